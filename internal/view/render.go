package view

import (
	"strconv"

	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/puppy-bowl/internal/domain/player"
	"github.com/riskibarqy/puppy-bowl/internal/usecase"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	classPlayer  = "player"
	classDetails = "playerDetails"
	classHidden  = "hidden"

	attrPlayerID = "data-player-id"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// RenderPlayers builds one list item per player. A nil slice means the fetch
// yielded nothing and is rejected, as is any record without a server id.
func RenderPlayers(players []player.Player) ([]*html.Node, error) {
	if players == nil {
		return nil, crerr.Mark(crerr.New("render players: no player list"), usecase.ErrRender)
	}

	items := make([]*html.Node, 0, len(players))
	for i, p := range players {
		if err := validate.Struct(p); err != nil {
			return nil, crerr.Mark(crerr.Wrapf(err, "render players: record %d", i), usecase.ErrRender)
		}
		items = append(items, renderPlayer(p))
	}
	return items, nil
}

func renderPlayer(p player.Player) *html.Node {
	id := strconv.FormatInt(p.ID, 10)

	item := element(atom.Li, attr("class", classPlayer), attr(attrPlayerID, id))
	appendChildren(item,
		textElement(atom.H2, "ID "+id),
		textElement(atom.H3, "Name "+p.Name),
		element(atom.Img, attr("src", p.ImageURL), attr("alt", p.Name)),
		textElement(atom.P, "TeamID "+p.TeamLabel()),
		renderDetails(p),
		actionForm("/players/"+id+"/details", "See Details", "details"),
		actionForm("/players/"+id+"/delete", "Remove Player", "remove"),
	)
	return item
}

func renderDetails(p player.Player) *html.Node {
	details := element(atom.Div, attr("class", classHidden+" "+classDetails))
	appendChildren(details,
		textElement(atom.P, p.Breed),
		textElement(atom.P, string(p.Status)),
		textElement(atom.P, p.CreatedAt),
		textElement(atom.P, p.UpdatedAt),
		textElement(atom.P, strconv.FormatInt(p.CohortID, 10)),
	)
	return details
}

// actionForm is a one-button form; the browser posts it and gets the page back.
func actionForm(action, label, name string) *html.Node {
	form := element(atom.Form, attr("method", "post"), attr("action", action))
	button := element(atom.Button, attr("type", "submit"), attr("name", name))
	button.AppendChild(text(label))
	form.AppendChild(button)
	return form
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func textElement(a atom.Atom, content string) *html.Node {
	n := element(a)
	n.AppendChild(text(content))
	return n
}

func text(content string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: content}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func appendChildren(parent *html.Node, children ...*html.Node) {
	for _, child := range children {
		parent.AppendChild(child)
	}
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, attr(key, val))
}
