package command

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Parse turns the full body of a `!`-prefixed message into a Command.
// Errors are user-facing: the dispatch loop relays their text verbatim
// into the room.
func Parse(text string) (Command, error) {
	verb, args := splitVerb(text)

	switch verb {
	case PingCmd:
		return Command{Kind: KindPing}, nil
	case HelpCmd:
		return Command{Kind: KindHelp}, nil
	case CategoriesCmd:
		return Command{Kind: KindCategories}, nil
	case AddCmd:
		req, err := parseAddArgs(args)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: KindAdd, Add: req}, nil
	default:
		return Command{}, fmt.Errorf("Unknown command: %s", verb)
	}
}

// splitVerb splits the message on the first space into the command verb
// and its raw argument string.
func splitVerb(text string) (verb, args string) {
	if i := strings.IndexByte(text, ' '); i >= 0 {
		return text[:i], text[i+1:]
	}
	return text, ""
}

// parseAddArgs parses the `<Category>: <Amount> [Note] [#Tag...]` grammar.
// The first `:` always separates the category from the rest, so a
// category cannot itself contain a colon.
func parseAddArgs(args string) (*AddRequest, error) {
	category, rest, found := strings.Cut(args, ":")
	if !found {
		return nil, invalidArgs()
	}

	category = strings.TrimSpace(category)

	amountToken, tail := splitVerb(strings.TrimSpace(rest))

	amountToken = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(amountToken), "$"))
	if category == "" || amountToken == "" {
		return nil, invalidArgs()
	}

	amount, err := decimal.NewFromString(amountToken)
	if err != nil {
		return nil, fmt.Errorf("Invalid amount: %s", amountToken)
	}

	note, tags := parseTail(strings.TrimSpace(tail))

	return &AddRequest{
		Category: category,
		Amount:   amount,
		Note:     note,
		Tags:     tags,
	}, nil
}

// parseTail splits the free-text tail into an optional note and a list
// of `#`-prefixed tags. A tail that starts with `#` carries no note;
// otherwise the first segment is the note. Empty segments, e.g. from
// consecutive or trailing `#`, are dropped. Order is preserved.
func parseTail(tail string) (note string, tags []string) {
	if tail == "" {
		return "", nil
	}

	hasNote := !strings.HasPrefix(tail, "#")

	var parts []string
	for _, part := range strings.Split(tail, "#") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}

	if hasNote && len(parts) > 0 {
		return parts[0], parts[1:]
	}
	return "", parts
}

func invalidArgs() error {
	return fmt.Errorf("Invalid arguments. Usage: %s", AddUsage)
}
