package command

import "github.com/shopspring/decimal"

// Bot command verbs.
const (
	PingCmd       = "!ping"
	HelpCmd       = "!help"
	CategoriesCmd = "!categories"
	AddCmd        = "!add"
)

// AddUsage describes the !add argument grammar in replies.
const AddUsage = "!add <Category>: <Amount> [Note] [#Tag...]"

// Kind identifies a command variant.
type Kind int

const (
	KindPing Kind = iota
	KindHelp
	KindCategories
	KindAdd
)

// Command is the parsed form of a `!`-prefixed message. Add is set
// only when Kind is KindAdd.
type Command struct {
	Kind Kind
	Add  *AddRequest
}

// AddRequest holds the arguments of a parsed !add command.
// Note == "" means no note was given.
type AddRequest struct {
	Category string
	Amount   decimal.Decimal
	Note     string
	Tags     []string
}
