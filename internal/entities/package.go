package entities

import (
	"bytes"
	"encoding/gob"
	"strings"

	"github.com/shopspring/decimal"
)

// Package тарифный план из каталога, сервис его только читает
type Package struct {
	Slug            string
	ProviderSlug    string
	Title           string
	Price           decimal.Decimal
	Currency        string
	Prices          map[string]decimal.Decimal
	DataAmountMB    int
	ValidityDays    int
	CountryCodes    []string
	IsTopupEligible bool
}

// PriceIn цена в нужной валюте, если для неё задан отдельный вариант
func (p Package) PriceIn(currency string) (decimal.Decimal, bool) {
	currency = strings.ToUpper(currency)
	if strings.EqualFold(p.Currency, currency) {
		return p.Price, true
	}
	price, ok := p.Prices[currency]
	return price, ok
}

// UpstreamSlug идентификатор пакета у провайдера
func (p Package) UpstreamSlug() string {
	if p.ProviderSlug != "" {
		return p.ProviderSlug
	}
	return p.Slug
}

func (p *Package) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (p *Package) Unmarshal(data []byte) error {
	buf := bytes.NewBuffer(data)
	dec := gob.NewDecoder(buf)
	return dec.Decode(p)
}

func init() {
	gob.Register(Package{})
}
