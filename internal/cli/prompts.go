package cli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"tradevisor/internal/models"
	"tradevisor/internal/pipeline"
	"tradevisor/internal/repository"
)

// ErrAborted marks a user-cancelled prompt (Ctrl-C or declined
// confirmation); callers exit quietly instead of reporting a failure.
var ErrAborted = fmt.Errorf("aborted")

// promptSelection walks the user through the four choices of a run.
func promptSelection(assets []models.Asset, strategies []repository.Strategy) (pipeline.Selection, error) {
	var sel pipeline.Selection

	asset, err := promptAsset(assets)
	if err != nil {
		return sel, err
	}
	sel.Asset = asset

	rng, err := promptRange("Select the historical range:", models.AllTimeRanges())
	if err != nil {
		return sel, err
	}
	sel.Frame.Range = rng

	interval, err := promptRange("Select the sampling interval:", intervalsFor(rng))
	if err != nil {
		return sel, err
	}
	sel.Frame.Interval = interval

	strategy, err := promptStrategy(strategies)
	if err != nil {
		return sel, err
	}
	sel.Strategy = strategy

	return sel, nil
}

func promptAsset(assets []models.Asset) (models.Asset, error) {
	options := make([]string, len(assets))
	for i, a := range assets {
		options[i] = a.Symbol
	}

	var symbol string
	prompt := &survey.Select{
		Message: "Select the asset to analyze:",
		Options: options,
		Help:    "Assets come from the configured asset list file",
	}
	if err := survey.AskOne(prompt, &symbol); err != nil {
		return models.Asset{}, wrapPromptErr(err)
	}

	for _, a := range assets {
		if a.Symbol == symbol {
			return a, nil
		}
	}
	return models.Asset{}, fmt.Errorf("unknown asset selection %q", symbol)
}

func promptRange(message string, ranges []models.TimeRange) (models.TimeRange, error) {
	options := make([]string, len(ranges))
	for i, r := range ranges {
		options[i] = string(r)
	}

	var picked string
	prompt := &survey.Select{
		Message: message,
		Options: options,
	}
	if err := survey.AskOne(prompt, &picked); err != nil {
		return "", wrapPromptErr(err)
	}
	return models.TimeRange(picked), nil
}

func promptStrategy(strategies []repository.Strategy) (repository.Strategy, error) {
	options := make([]string, len(strategies))
	for i, s := range strategies {
		options[i] = s.Name
	}

	var name string
	prompt := &survey.Select{
		Message: "Select the trading strategy:",
		Options: options,
		Help:    "Strategies are the text files in the strategies directory",
	}
	if err := survey.AskOne(prompt, &name); err != nil {
		return repository.Strategy{}, wrapPromptErr(err)
	}

	for _, s := range strategies {
		if s.Name == name {
			return s, nil
		}
	}
	return repository.Strategy{}, fmt.Errorf("unknown strategy selection %q", name)
}

// confirmRun shows the selection and asks for a go-ahead.
func confirmRun(sel pipeline.Selection) (bool, error) {
	ok := true
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Analyze %s over %s at %s with the %s strategy?",
			sel.Asset.Symbol, sel.Frame.Range, sel.Frame.Interval, sel.Strategy.Name),
		Default: true,
	}
	if err := survey.AskOne(prompt, &ok); err != nil {
		return false, wrapPromptErr(err)
	}
	return ok, nil
}

// intervalsFor narrows the interval options to tokens no coarser than
// the chosen range.
func intervalsFor(rng models.TimeRange) []models.TimeRange {
	all := models.AllTimeRanges()
	for i, r := range all {
		if r == rng {
			return all[:i+1]
		}
	}
	return all
}

func wrapPromptErr(err error) error {
	if err == terminal.InterruptErr {
		return ErrAborted
	}
	return err
}
