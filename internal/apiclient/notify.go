package apiclient

import (
	"fmt"
	"io"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Notify is the text a mutation reports once it settles.
type Notify struct {
	Success string
	Failure string
}

// Notifier shows mutation outcomes to the user.
type Notifier interface {
	Success(msg string)
	Failure(msg string, err error)
}

var titleCase = cases.Title(language.English, cases.NoLower)

var pastTense = map[string]string{
	"create": "created",
	"update": "updated",
	"delete": "deleted",
}

// MutationNotify builds the standard messages for verb applied to a resource,
// e.g. "Carrier created successfully" and "Failed to create carrier".
func MutationNotify(resource, verb string) Notify {
	past, ok := pastTense[verb]
	if !ok {
		past = verb + "d"
	}
	return Notify{
		Success: titleCase.String(resource) + " " + past + " successfully",
		Failure: "Failed to " + verb + " " + resource,
	}
}

// WriterNotifier prints notifications as lines on W.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) Success(msg string) {
	fmt.Fprintln(n.W, msg)
}

func (n WriterNotifier) Failure(msg string, err error) {
	if err != nil {
		fmt.Fprintf(n.W, "%s: %v\n", msg, err)
		return
	}
	fmt.Fprintln(n.W, msg)
}

type discardNotifier struct{}

func (discardNotifier) Success(string)        {}
func (discardNotifier) Failure(string, error) {}
