package presenter

import (
	"log"

	"github.com/rm-hull/product-sheets/internal/cards"
	"github.com/rm-hull/product-sheets/internal/catalog"
	"github.com/rm-hull/product-sheets/internal/models"
)

type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Focusable is anything that can take keyboard focus.
type Focusable interface {
	Focus()
}

// FocusTracker reports the element that currently has focus, or nil.
type FocusTracker interface {
	Active() Focusable
}

// Dialog is the UI the presenter drives. Implementations own the toolkit
// specifics; the presenter only decides what to show and when.
type Dialog interface {
	Render(content models.ModalContent)
	SetVisible(visible bool)
	SetScrollLocked(locked bool)
	FocusClose()
}

// Target identifies what a click inside the dialog landed on.
type Target int

const (
	TargetContent Target = iota
	TargetBackdrop
	TargetClose
)

// Lookup is the read side of the product repository.
type Lookup interface {
	Lookup(key string) (catalog.Record, bool)
}

type Presenter struct {
	lookup    Lookup
	dialog    Dialog
	focus     FocusTracker
	cards     map[string]cards.Card
	state     State
	key       string
	lastFocus Focusable
}

func New(lookup Lookup, dialog Dialog, focus FocusTracker) *Presenter {
	return &Presenter{
		lookup: lookup,
		dialog: dialog,
		focus:  focus,
		cards:  make(map[string]cards.Card),
	}
}

// Bind registers cards that can open the dialog. Cards without a key are
// skipped and a key that is already bound keeps its first card, so scanning
// the page again never binds a card twice. Returns the number of new cards.
func (p *Presenter) Bind(cs []cards.Card) int {
	bound := 0
	for _, card := range cs {
		if card.Key == "" {
			continue
		}
		if _, ok := p.cards[card.Key]; ok {
			continue
		}
		p.cards[card.Key] = card
		bound++
	}
	return bound
}

func (p *Presenter) Bound(key string) bool {
	_, ok := p.cards[key]
	return ok
}

func (p *Presenter) State() State {
	return p.state
}

// Key is the key the dialog was last opened for.
func (p *Presenter) Key() string {
	return p.key
}

// Activate handles a click on the card bound to key. Unbound keys are ignored.
func (p *Presenter) Activate(key string) {
	card, ok := p.cards[key]
	if !ok {
		return
	}
	p.open(card)
}

// KeyDown handles a key press on the card bound to key. Enter and Space
// activate the card; it reports whether the key was consumed.
func (p *Presenter) KeyDown(key, keyName string) bool {
	switch keyName {
	case "Enter", " ", "Spacebar":
	default:
		return false
	}
	if !p.Bound(key) {
		return false
	}
	p.Activate(key)
	return true
}

// Click handles a click inside the dialog. Only the close control and the
// backdrop close it.
func (p *Presenter) Click(target Target) {
	if target == TargetClose || target == TargetBackdrop {
		p.Close()
	}
}

// Escape closes the dialog if it is open.
func (p *Presenter) Escape() {
	if p.state == Open {
		p.Close()
	}
}

// OnLoaded can be subscribed to the repository's loaded notification.
func (p *Presenter) OnLoaded(event catalog.Loaded) {
	log.Printf("product sheet loaded with %d records", event.Count)
}

func (p *Presenter) open(card cards.Card) {
	record, _ := p.lookup.Lookup(card.Key)

	p.dialog.Render(Format(card.Key, record, &card))
	p.dialog.SetVisible(true)
	p.dialog.SetScrollLocked(true)

	if p.focus != nil {
		p.lastFocus = p.focus.Active()
	}
	p.dialog.FocusClose()

	p.key = card.Key
	p.state = Open
}

// Close hides the dialog and returns focus to whatever had it before the
// dialog opened.
func (p *Presenter) Close() {
	p.dialog.SetVisible(false)
	p.dialog.SetScrollLocked(false)

	if p.lastFocus != nil {
		p.lastFocus.Focus()
	}
	p.state = Closed
}
