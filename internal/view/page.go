package view

import (
	"io"
	"strconv"
	"strings"
	"sync"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/puppy-bowl/internal/domain/player"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	PlayersContainerID = "all-players-container"
	TeamsContainerID   = "all-teams-container"
	NewPlayerFormID    = "new-player-form"
)

// Form field names as the new-player form posts them.
const (
	FieldTitle    = "title"
	FieldBreed    = "breed"
	FieldStatus   = "status"
	FieldImageURL = "imageUrl"
	FieldTeamID   = "teamId"
)

var formFields = []struct {
	name, label string
}{
	{FieldTitle, "Name"},
	{FieldBreed, "Breed"},
	{FieldStatus, "Status"},
	{FieldImageURL, "Image URL"},
	{FieldTeamID, "Team ID"},
}

// Page owns the one document the server shows. The players container is only
// ever changed by full replacement; toggles touch a single item.
type Page struct {
	mu sync.RWMutex

	doc     *html.Node
	players *html.Node
	inputs  map[string]*html.Node
}

func NewPage(title string) *Page {
	p := &Page{inputs: make(map[string]*html.Node, len(formFields))}
	p.doc = p.build(title)
	return p
}

func (p *Page) build(title string) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, attr("lang", "en"))
	doc.AppendChild(root)

	head := element(atom.Head)
	appendChildren(head,
		element(atom.Meta, attr("charset", "utf-8")),
		textElement(atom.Title, title),
		textElement(atom.Style, "."+classHidden+"{display:none}"),
	)
	root.AppendChild(head)

	body := element(atom.Body)
	root.AppendChild(body)

	body.AppendChild(textElement(atom.H1, title))
	body.AppendChild(p.buildForm())

	p.players = element(atom.Ul, attr("id", PlayersContainerID))
	appendChildren(body,
		p.players,
		element(atom.Div, attr("id", TeamsContainerID)),
	)
	return doc
}

func (p *Page) buildForm() *html.Node {
	form := element(atom.Form,
		attr("id", NewPlayerFormID),
		attr("method", "post"),
		attr("action", "/players"),
	)
	for _, f := range formFields {
		label := element(atom.Label)
		label.AppendChild(text(f.label + " "))
		input := element(atom.Input, attr("type", "text"), attr("name", f.name), attr("value", ""))
		label.AppendChild(input)
		form.AppendChild(label)
		p.inputs[f.name] = input
	}

	submit := element(atom.Button, attr("type", "submit"))
	submit.AppendChild(text("Add Player"))
	form.AppendChild(submit)
	return form
}

// ReplacePlayers renders players and swaps them in as the container's
// children. On a render error the container keeps what it had.
func (p *Page) ReplacePlayers(players []player.Player) error {
	items, err := RenderPlayers(players)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for child := p.players.FirstChild; child != nil; {
		next := child.NextSibling
		p.players.RemoveChild(child)
		child = next
	}
	appendChildren(p.players, items...)
	return nil
}

// ToggleDetails flips the details block of one item. It reports false when no
// item carries that id.
func (p *Page) ToggleDetails(id int64) bool {
	want := strconv.FormatInt(id, 10)

	p.mu.Lock()
	defer p.mu.Unlock()

	for item := p.players.FirstChild; item != nil; item = item.NextSibling {
		if got, _ := getAttr(item, attrPlayerID); got != want {
			continue
		}
		details := findByClass(item, classDetails)
		if details == nil {
			return false
		}
		class, _ := getAttr(details, "class")
		setAttr(details, "class", toggleClass(class, classHidden))
		return true
	}
	return false
}

func (p *Page) PlayerCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	n := 0
	for item := p.players.FirstChild; item != nil; item = item.NextSibling {
		n++
	}
	return n
}

// SetFormValues keeps what the user last typed so the form comes back filled in.
func (p *Page) SetFormValues(in player.NewPlayer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	setAttr(p.inputs[FieldTitle], "value", in.Name)
	setAttr(p.inputs[FieldBreed], "value", in.Breed)
	setAttr(p.inputs[FieldStatus], "value", in.Status)
	setAttr(p.inputs[FieldImageURL], "value", in.ImageURL)
	setAttr(p.inputs[FieldTeamID], "value", in.TeamID)
}

func (p *Page) FormValues() player.NewPlayer {
	p.mu.RLock()
	defer p.mu.RUnlock()

	value := func(name string) string {
		v, _ := getAttr(p.inputs[name], "value")
		return v
	}
	return player.NewPlayer{
		Name:     value(FieldTitle),
		Breed:    value(FieldBreed),
		Status:   value(FieldStatus),
		ImageURL: value(FieldImageURL),
		TeamID:   value(FieldTeamID),
	}
}

// Render writes the whole document. The tree is serialised into a pooled
// buffer first so a failed render never leaves a half-written response.
func (p *Page) Render(w io.Writer) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	p.mu.RLock()
	err := html.Render(buf, p.doc)
	p.mu.RUnlock()
	if err != nil {
		return crerr.Wrap(err, "render page")
	}

	if _, err := buf.WriteTo(w); err != nil {
		return crerr.Wrap(err, "write page")
	}
	return nil
}

func findByClass(n *html.Node, class string) *html.Node {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode {
			continue
		}
		if v, ok := getAttr(child, "class"); ok && hasClass(v, class) {
			return child
		}
		if found := findByClass(child, class); found != nil {
			return found
		}
	}
	return nil
}

func hasClass(classes, class string) bool {
	for _, c := range strings.Fields(classes) {
		if c == class {
			return true
		}
	}
	return false
}

func toggleClass(classes, class string) string {
	fields := strings.Fields(classes)
	out := make([]string, 0, len(fields)+1)
	removed := false
	for _, c := range fields {
		if c == class {
			removed = true
			continue
		}
		out = append(out, c)
	}
	if !removed {
		out = append([]string{class}, out...)
	}
	return strings.Join(out, " ")
}
