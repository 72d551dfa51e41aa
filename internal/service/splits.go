package service

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/khushthecoder/Expense-Splitter/internal/calculator"
	"github.com/khushthecoder/Expense-Splitter/internal/ledger"
	"github.com/khushthecoder/Expense-Splitter/pkg/api"
)

// resolveSplits turns the participants of a new expense into exact shares
// according to the requested split mode.
func resolveSplits(mode string, amount decimal.Decimal, specs []api.SplitSpec) ([]ledger.SplitInput, error) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" || mode == api.SplitModeExact {
		out := make([]ledger.SplitInput, len(specs))
		for i, s := range specs {
			out[i] = ledger.SplitInput{UserID: s.UserID, Share: s.Value}
		}
		return out, nil
	}

	var (
		shares []calculator.Share
		err    error
	)
	switch mode {
	case api.SplitModeEqual:
		ids := make([]int64, len(specs))
		for i, s := range specs {
			ids[i] = s.UserID
		}
		shares, err = calculator.SplitEqually(amount, ids)
	case api.SplitModeWeights:
		shares, err = calculator.SplitByWeights(amount, toWeights(specs))
	case api.SplitModePercent:
		shares, err = calculator.SplitByPercent(amount, toWeights(specs))
	default:
		return nil, &ledger.Error{Kind: ledger.KindInvalidArgument, Message: "unknown split mode " + mode}
	}
	if err != nil {
		kind := ledger.KindInvalidArgument
		if errors.Is(err, calculator.ErrNonPositiveAmount) {
			kind = ledger.KindInvalidAmount
		}
		return nil, &ledger.Error{Kind: kind, Message: err.Error(), Err: err}
	}

	out := make([]ledger.SplitInput, len(shares))
	for i, s := range shares {
		out[i] = ledger.SplitInput{UserID: s.UserID, Share: s.Amount}
	}
	return out, nil
}

func toWeights(specs []api.SplitSpec) []calculator.Weight {
	weights := make([]calculator.Weight, len(specs))
	for i, s := range specs {
		weights[i] = calculator.Weight{UserID: s.UserID, Weight: s.Value}
	}
	return weights
}
