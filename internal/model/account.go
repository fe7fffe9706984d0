package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AccountType classifies ledger lines into the five standard classes.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// FundType classifies accounts by governmental fund category. Values
// outside the predefined set are carried through as caller-defined short
// codes.
type FundType string

const (
	FundGovernmental FundType = "governmental"
	FundProprietary  FundType = "proprietary"
	FundFiduciary    FundType = "fiduciary"
	FundMemo         FundType = "memo"
	FundUnclassified FundType = ""
)

// AccountRecord is one flat ledger line, as read from a spreadsheet row or
// a repository CSV row. Hierarchy is encoded only in the dot-delimited
// Code; records carry no parent links.
type AccountRecord struct {
	Code        string
	Description string
	Type        AccountType
	Fund        string // fund number, optional
	FundClass   FundType
	Budget      decimal.Decimal
	Actual      decimal.Decimal
}

// accountVocab maps substrings found in free-form type text to account
// types. First hit wins.
var accountVocab = []struct {
	keyword string
	atype   AccountType
}{
	{"asset", AccountTypeAsset},
	{"cash", AccountTypeAsset},
	{"investment", AccountTypeAsset},
	{"receivable", AccountTypeAsset},
	{"liabilit", AccountTypeLiability},
	{"payable", AccountTypeLiability},
	{"debt", AccountTypeLiability},
	{"equity", AccountTypeEquity},
	{"retained", AccountTypeEquity},
	{"balance", AccountTypeEquity},
	{"revenue", AccountTypeRevenue},
	{"tax", AccountTypeRevenue},
	{"fee", AccountTypeRevenue},
	{"grant", AccountTypeRevenue},
	{"expense", AccountTypeExpense},
	{"salar", AccountTypeExpense},
	{"suppl", AccountTypeExpense},
	{"utilit", AccountTypeExpense},
}

// CoerceAccountType maps free-form account type text to an AccountType by
// case-insensitive substring matching. Unrecognized text defaults to
// asset; ok reports whether a vocabulary entry matched.
func CoerceAccountType(text string) (atype AccountType, ok bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return AccountTypeAsset, false
	}
	for _, v := range accountVocab {
		if strings.Contains(lower, v.keyword) {
			return v.atype, true
		}
	}
	return AccountTypeAsset, false
}

var fundVocab = []struct {
	keyword string
	ftype   FundType
}{
	{"governmental", FundGovernmental},
	{"general", FundGovernmental},
	{"special revenue", FundGovernmental},
	{"proprietary", FundProprietary},
	{"enterprise", FundProprietary},
	{"internal service", FundProprietary},
	{"fiduciary", FundFiduciary},
	{"trust", FundFiduciary},
	{"agency", FundFiduciary},
	{"memo", FundMemo},
}

// CoerceFundType maps free-form fund class text to a FundType. Text that
// matches no vocabulary entry is preserved as a caller-defined short code
// (lowercased); empty text yields FundUnclassified.
func CoerceFundType(text string) (ftype FundType, ok bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return FundUnclassified, false
	}
	for _, v := range fundVocab {
		if strings.Contains(lower, v.keyword) {
			return v.ftype, true
		}
	}
	return FundType(lower), false
}

// Variance returns the record's own actual minus budget. Positive means
// over budget.
func (r AccountRecord) Variance() decimal.Decimal {
	return r.Actual.Sub(r.Budget)
}
