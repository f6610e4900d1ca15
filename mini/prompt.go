package mini

import (
	"fmt"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/gense-cli/gense/color"
	"github.com/gense-cli/gense/icon"
	"github.com/gense-cli/gense/style"
	"github.com/gense-cli/gense/util"
	"github.com/samber/lo"
)

// bind is a single-letter menu action rendered below the numbered items.
type bind struct {
	key, description string
}

// eq reports whether other is the same action. Safe to call with the
// nil bind that menu returns when a numbered item was picked instead.
func (b *bind) eq(other *bind) bool {
	return other != nil && b.key == other.key
}

var (
	quit   = &bind{"q", "quit"}
	back   = &bind{"b", "back"}
	search = &bind{"s", "search"}
	replay = &bind{"r", "replay"}
)

type input struct {
	value string
}

// getInput reads a single line, re-prompting until validate accepts it.
func getInput(validate func(string) bool) (*input, error) {
	var value string

	prompt := &survey.Input{Message: ">"}
	err := survey.AskOne(prompt, &value, survey.WithValidator(func(ans interface{}) error {
		s, _ := ans.(string)
		if !validate(s) {
			return fmt.Errorf("invalid input")
		}

		return nil
	}))
	if err != nil {
		return nil, err
	}

	return &input{value: value}, nil
}

// title prints a banner above the upcoming prompt.
func title(s string) {
	fmt.Println(style.Title(s))
}

// fail prints a non-fatal failure notice.
func fail(s string) {
	fmt.Printf("%s %s\n", style.Fg(color.Red)(icon.Get(icon.Fail)), s)
}

// progress prints an ephemeral status line and returns its eraser.
func progress(s string) func() {
	return util.PrintErasable(style.Faint(s))
}

// menu prints the items as a numbered list followed by the letter
// binds, then reads one choice. Exactly one of the returned bind and
// item is set. The quit bind is always offered.
func menu[T fmt.Stringer](items []T, binds ...*bind) (*bind, T, error) {
	var zero T

	if !lo.Contains(binds, quit) {
		binds = append(binds, quit)
	}

	for i, item := range items {
		fmt.Printf("%s %s\n", style.Bold(fmt.Sprintf("[%d]", i+1)), style.Truncate(truncateAt)(item.String()))
	}
	for _, b := range binds {
		fmt.Printf("%s %s\n", style.Bold("["+b.key+"]"), style.Faint(b.description))
	}

	in, err := getInput(func(s string) bool {
		if _, ok := bindFor(binds, s); ok {
			return true
		}

		n, err := strconv.ParseInt(s, 10, 16)
		return err == nil && 0 < int(n) && int(n) <= len(items)
	})
	if err != nil {
		return nil, zero, err
	}

	if b, ok := bindFor(binds, in.value); ok {
		return b, zero, nil
	}

	n := lo.Must(strconv.ParseInt(in.value, 10, 16))
	return nil, items[n-1], nil
}

func bindFor(binds []*bind, key string) (*bind, bool) {
	return lo.Find(binds, func(b *bind) bool {
		return b.key == key
	})
}
