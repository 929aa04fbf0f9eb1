package repository

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/subsync/internal/db"
	"github.com/nikolayk812/subsync/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

func mapDBMoneyToDomain(amount decimal.Decimal, currencyCode string) (domain.Money, error) {
	parsedCurrency, err := currency.ParseISO(currencyCode)
	if err != nil {
		return domain.Money{}, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
	}

	return domain.Money{Amount: amount, Currency: parsedCurrency}, nil
}

// mapDBCalculatorToDomain maps a NULL kind to the zero Calculator.
func mapDBCalculatorToDomain(kind *string, amount, percent decimal.Decimal) (domain.Calculator, error) {
	if lo.FromPtr(kind) == "" {
		return domain.Calculator{}, nil
	}

	parsedKind, err := domain.ToCalculatorKind(*kind)
	if err != nil {
		return domain.Calculator{}, fmt.Errorf("domain.ToCalculatorKind[%s]: %w", *kind, err)
	}

	return domain.Calculator{
		Kind:    parsedKind,
		Amount:  amount,
		Percent: percent,
	}, nil
}

func mapDBAddressToDomain(a db.Address) domain.Address {
	return domain.Address{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Address1:  a.Address1,
		Address2:  a.Address2,
		City:      a.City,
		Zipcode:   a.Zipcode,
		Phone:     a.Phone,
		Country:   a.Country,
	}
}

func mapDomainAddressToInsertParams(a domain.Address) db.InsertAddressParams {
	return db.InsertAddressParams{
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Address1:  a.Address1,
		Address2:  a.Address2,
		City:      a.City,
		Zipcode:   a.Zipcode,
		Phone:     a.Phone,
		Country:   a.Country,
	}
}

func mapDomainAddressToUpdateParams(id uuid.UUID, a domain.Address) db.UpdateAddressParams {
	return db.UpdateAddressParams{
		ID:        id,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Address1:  a.Address1,
		Address2:  a.Address2,
		City:      a.City,
		Zipcode:   a.Zipcode,
		Phone:     a.Phone,
		Country:   a.Country,
	}
}

func mapDBEnterpriseFeeToDomain(f db.EnterpriseFee) (domain.EnterpriseFee, error) {
	calc, err := mapDBCalculatorToDomain(f.CalculatorKind, f.CalculatorAmount, f.CalculatorPercent)
	if err != nil {
		return domain.EnterpriseFee{}, fmt.Errorf("mapDBCalculatorToDomain: %w", err)
	}

	return domain.EnterpriseFee{
		ID:           f.ID,
		EnterpriseID: f.EnterpriseID,
		Name:         f.Name,
		Calculator:   calc,
	}, nil
}

func mapDBVariantToDomain(v db.Variant) (domain.Variant, error) {
	price, err := mapDBMoneyToDomain(v.PriceAmount, v.PriceCurrency)
	if err != nil {
		return domain.Variant{}, fmt.Errorf("mapDBMoneyToDomain: %w", err)
	}

	return domain.Variant{
		ID:          v.ID,
		ProductName: v.ProductName,
		ProducerID:  v.ProducerID,
		Price:       price,
		DeletedAt:   v.DeletedAt,
	}, nil
}

func mapDBVariantsToDomain(rows []db.Variant) ([]domain.Variant, error) {
	variants := make([]domain.Variant, 0, len(rows))

	for _, row := range rows {
		v, err := mapDBVariantToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapDBVariantToDomain[%s]: %w", row.ID, err)
		}
		variants = append(variants, v)
	}

	return variants, nil
}

func nilSliceIfEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}
