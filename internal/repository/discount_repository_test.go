package repository_test

import (
	"time"

	"github.com/nikolayk812/artisan-shop/internal/domain"
	"github.com/nikolayk812/artisan-shop/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *repositorySuite) TestFindActiveByCode() {
	defer suite.deleteAll()

	ctx := suite.T().Context()
	validUntil := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Microsecond)

	_, err := suite.pool.Exec(ctx, `
		INSERT INTO discount_codes (code, description, is_active, discount_type, discount_value,
		                            min_purchase_amount, max_uses, current_uses, valid_until)
		VALUES ('save10', 'ten off', TRUE, 'percentage', 10, 50, 5, 2, $1),
		       ('flat', '', TRUE, 'fixed', 5000, 0, NULL, 0, NULL),
		       ('gone', '', FALSE, 'fixed', 1, 0, NULL, 0, NULL)`, validUntil)
	suite.Require().NoError(err)

	repo, err := repository.NewDiscount(suite.pool)
	suite.Require().NoError(err)

	tests := []struct {
		name      string
		code      string
		want      domain.DiscountCode
		wantErr   error
		wantError string
	}{
		{
			name: "percentage with caps: ok",
			code: "save10",
			want: domain.DiscountCode{
				Code:              "save10",
				Description:       "ten off",
				IsActive:          true,
				DiscountType:      domain.DiscountPercentage,
				DiscountValue:     decimal.NewFromInt(10),
				MinPurchaseAmount: decimal.NewFromInt(50),
				MaxUses:           intPtr(5),
				CurrentUses:       2,
				ValidUntil:        &validUntil,
			},
		},
		{
			name: "fixed without caps: ok",
			code: "flat",
			want: domain.DiscountCode{
				Code:              "flat",
				IsActive:          true,
				DiscountType:      domain.DiscountFixed,
				DiscountValue:     decimal.NewFromInt(5000),
				MinPurchaseAmount: decimal.Zero,
			},
		},
		{
			name:    "inactive: not found",
			code:    "gone",
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "exact match only: not found",
			code:    "SAVE10",
			wantErr: domain.ErrNotFound,
		},
		{
			name:      "empty code: error",
			code:      "",
			wantError: "code is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			got, err := repo.FindActiveByCode(t.Context(), tt.code)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.want.Code, got.Code)
			assert.Equal(t, tt.want.Description, got.Description)
			assert.Equal(t, tt.want.DiscountType, got.DiscountType)
			assert.True(t, tt.want.DiscountValue.Equal(got.DiscountValue))
			assert.True(t, tt.want.MinPurchaseAmount.Equal(got.MinPurchaseAmount))
			assert.Equal(t, tt.want.MaxUses, got.MaxUses)
			assert.Equal(t, tt.want.CurrentUses, got.CurrentUses)
			if tt.want.ValidUntil == nil {
				assert.Nil(t, got.ValidUntil)
			} else {
				require.NotNil(t, got.ValidUntil)
				assert.True(t, tt.want.ValidUntil.Equal(*got.ValidUntil))
			}
		})
	}
}

func intPtr(i int) *int {
	return &i
}
