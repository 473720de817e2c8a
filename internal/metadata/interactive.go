package metadata

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/peterh/liner"
)

// promptFunc asks the user one question and returns the entered line.
// suggestion, when non-empty, pre-fills the input for editing.
type promptFunc func(label, suggestion string) (string, error)

// Interactive resolves metadata from the PDF itself and prompts for
// whatever is missing: title, author, and a publication date (with a
// numbered choice when the PDF carries several candidate dates).
type Interactive struct {
	logger *slog.Logger
	prompt promptFunc // overridden in tests; nil means liner
}

// NewInteractive creates an Interactive resolver.
func NewInteractive(logger *slog.Logger) *Interactive {
	if logger == nil {
		logger = slog.Default()
	}
	return &Interactive{logger: logger}
}

// Resolve reads the PDF's own metadata and fills the gaps via prompts.
// A markdown-derived title hint is offered as an editable suggestion.
func (r *Interactive) Resolve(ctx context.Context, pdfPath string, hints Hints) (*Meta, error) {
	info, err := ReadFileInfo(pdfPath)
	if err != nil {
		// Metadata extraction failing is not fatal; everything can be
		// entered by hand.
		r.logger.Warn("could not read pdf metadata", "path", pdfPath, "error", err)
		info = &FileInfo{}
	}

	prompt := r.prompt
	if prompt == nil {
		line := liner.NewLiner()
		defer line.Close()
		line.SetCtrlCAborts(true)
		prompt = func(label, suggestion string) (string, error) {
			if suggestion != "" {
				return line.PromptWithSuggestion(label, suggestion, len(suggestion))
			}
			return line.Prompt(label)
		}
	}

	meta := &Meta{
		Title:     info.Title,
		Author:    info.Author,
		PageCount: info.PageCount,
	}

	if meta.Title == "" {
		fmt.Printf("\nMetadata missing: Title (%s)\n", pdfPath)
		meta.Title, err = promptNonEmpty(prompt, "Title: ", hints.Title)
		if err != nil {
			return nil, err
		}
	}

	if meta.Author == "" {
		fmt.Printf("\nMetadata missing: Author (%s)\n", pdfPath)
		meta.Author, err = promptNonEmpty(prompt, "Author: ", "")
		if err != nil {
			return nil, err
		}
	}

	meta.PublicationDate, err = chooseDate(prompt, info.Dates)
	if err != nil {
		return nil, err
	}
	for meta.PublicationDate == "" {
		fmt.Printf("\nMetadata missing: Publication Date (%s)\n", pdfPath)
		entered, err := prompt("Publication Date (YYYY-MM-DD): ", "")
		if err != nil {
			return nil, err
		}
		entered = strings.TrimSpace(entered)
		if !ValidDate(entered) {
			r.logger.Warn("invalid date format entered", "value", entered)
			fmt.Println("Invalid date format. Please use YYYY-MM-DD")
			continue
		}
		meta.PublicationDate = entered
	}

	return meta, nil
}

// promptNonEmpty re-asks until a non-blank answer is entered.
func promptNonEmpty(prompt promptFunc, label, suggestion string) (string, error) {
	for {
		value, err := prompt(label, suggestion)
		if err != nil {
			return "", err
		}
		value = strings.TrimSpace(value)
		if value != "" {
			return value, nil
		}
		fmt.Println("A value is required")
	}
}

// chooseDate picks a publication date from the candidates the PDF offers.
// No candidate: returns "" so the caller prompts for a custom date. One
// candidate: used as is. Several: numbered menu, option 0 meaning a
// custom date.
func chooseDate(prompt promptFunc, candidates []DateCandidate) (string, error) {
	switch len(candidates) {
	case 0:
		return "", nil
	case 1:
		return candidates[0].Date, nil
	}

	fmt.Println("\nMultiple dates found in the PDF:")
	fmt.Println("0. Enter a custom date")
	for i, c := range candidates {
		fmt.Printf("%d. %s: %s\n", i+1, c.Label, c.Date)
	}

	for {
		answer, err := prompt(fmt.Sprintf("Select a date option (0-%d): ", len(candidates)), "")
		if err != nil {
			return "", err
		}
		choice, err := strconv.Atoi(strings.TrimSpace(answer))
		if err != nil {
			fmt.Println("Please enter a valid number")
			continue
		}
		if choice == 0 {
			return "", nil
		}
		if choice >= 1 && choice <= len(candidates) {
			return candidates[choice-1].Date, nil
		}
		fmt.Println("Invalid choice. Please try again")
	}
}
