package api

import (
	"github.com/google/uuid"
	"github.com/nikolayk812/artisan-shop/internal/checkout"
	"github.com/nikolayk812/artisan-shop/internal/domain"
	"github.com/nikolayk812/artisan-shop/internal/pricing"
)

type moneyView struct {
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Formatted string `json:"formatted"`
}

func newMoneyView(m domain.Money, l domain.Locale) moneyView {
	return moneyView{
		Amount:    m.Amount.StringFixed(2),
		Currency:  m.Currency.String(),
		Formatted: pricing.Format(m, l),
	}
}

type lineView struct {
	ProductID uuid.UUID  `json:"product_id"`
	Name      string     `json:"name"`
	Quantity  int        `json:"quantity"`
	UnitPrice *moneyView `json:"unit_price"`
	LineTotal moneyView  `json:"line_total"`
}

type totalsView struct {
	Subtotal         moneyView `json:"subtotal"`
	Shipping         moneyView `json:"shipping"`
	PreDiscountTotal moneyView `json:"pre_discount_total"`
	Discount         moneyView `json:"discount"`
	Total            moneyView `json:"total"`
	DiscountStale    bool      `json:"discount_stale"`
}

func newTotalsView(t pricing.Totals, l domain.Locale) totalsView {
	return totalsView{
		Subtotal:         newMoneyView(t.Subtotal, l),
		Shipping:         newMoneyView(t.Shipping, l),
		PreDiscountTotal: newMoneyView(t.PreDiscountTotal, l),
		Discount:         newMoneyView(t.Discount, l),
		Total:            newMoneyView(t.Total, l),
		DiscountStale:    t.DiscountStale,
	}
}

type discountView struct {
	Code           string `json:"code"`
	Description    string `json:"description,omitempty"`
	DiscountType   string `json:"discount_type"`
	DiscountValue  string `json:"discount_value"`
	DiscountAmount string `json:"discount_amount"`
	FinalTotal     string `json:"final_total"`
}

func newDiscountView(info *domain.DiscountInfo) *discountView {
	if info == nil {
		return nil
	}

	return &discountView{
		Code:           info.Code,
		Description:    info.Description,
		DiscountType:   string(info.DiscountType),
		DiscountValue:  info.DiscountValue.String(),
		DiscountAmount: info.DiscountAmount.StringFixed(2),
		FinalTotal:     info.FinalTotal.StringFixed(2),
	}
}

type cartView struct {
	Items     []lineView    `json:"items"`
	ItemCount int           `json:"item_count"`
	Totals    totalsView    `json:"totals"`
	Discount  *discountView `json:"discount"`
}

func newCartView(c domain.Cart, t pricing.Totals, info *domain.DiscountInfo, l domain.Locale) cartView {
	v := cartView{
		Items:     make([]lineView, 0, len(c.Items)),
		ItemCount: c.TotalQuantity(),
		Totals:    newTotalsView(t, l),
		Discount:  newDiscountView(info),
	}

	for _, item := range c.Items {
		line := lineView{
			ProductID: item.Product.ID,
			Name:      item.Product.Name(l),
			Quantity:  item.Quantity,
			LineTotal: newMoneyView(domain.ZeroMoney(t.Subtotal.Currency), l),
		}
		if price, ok := pricing.EffectivePrice(item.Product); ok {
			unit := newMoneyView(domain.NewMoney(price, t.Subtotal.Currency), l)
			total, _ := pricing.LineTotal(item)
			line.UnitPrice = &unit
			line.LineTotal = newMoneyView(domain.NewMoney(total, t.Subtotal.Currency), l)
		}
		v.Items = append(v.Items, line)
	}

	return v
}

func newSummaryView(s checkout.Summary, l domain.Locale) cartView {
	v := cartView{
		Items:    make([]lineView, 0, len(s.Lines)),
		Totals:   newTotalsView(s.Totals, l),
		Discount: newDiscountView(s.Discount),
	}

	for _, line := range s.Lines {
		lv := lineView{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			LineTotal: newMoneyView(line.LineTotal, l),
		}
		if line.UnitPrice != nil {
			unit := newMoneyView(*line.UnitPrice, l)
			lv.UnitPrice = &unit
		}
		v.ItemCount += line.Quantity
		v.Items = append(v.Items, lv)
	}

	return v
}

type productView struct {
	ID                 uuid.UUID      `json:"id"`
	Name               string         `json:"name"`
	Description        string         `json:"description"`
	DolarPrice         *string        `json:"dolar_price"`
	DiscountPercentage *string        `json:"discount_percentage"`
	EffectivePrice     *moneyView     `json:"effective_price"`
	Media              []domain.Media `json:"media"`
	Active             bool           `json:"active"`
}

func newProductView(p domain.Product, calc pricing.Calculator, l domain.Locale) productView {
	v := productView{
		ID:          p.ID,
		Name:        p.Name(l),
		Description: p.Description(l),
		Media:       p.Media,
		Active:      p.Active,
	}
	if v.Media == nil {
		v.Media = []domain.Media{}
	}
	if p.DolarPrice != nil {
		s := p.DolarPrice.StringFixed(2)
		v.DolarPrice = &s
	}
	if p.DiscountPercentage != nil {
		s := p.DiscountPercentage.String()
		v.DiscountPercentage = &s
	}
	if price, ok := pricing.EffectivePrice(p); ok {
		m := newMoneyView(domain.NewMoney(price, calc.Currency), l)
		v.EffectivePrice = &m
	}

	return v
}
