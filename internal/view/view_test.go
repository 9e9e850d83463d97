package view

import (
	"bytes"
	"net/url"
	"strings"
	"testing"

	"github.com/anaskhan96/soup"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/puppy-bowl/internal/domain/player"
	"github.com/riskibarqy/puppy-bowl/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func rex() player.Player {
	return player.Player{
		ID:        1,
		Name:      "Rex",
		Breed:     "Lab",
		Status:    "Injured",
		ImageURL:  "x",
		TeamID:    int64Ptr(2),
		CohortID:  3,
		CreatedAt: "t1",
		UpdatedAt: "t2",
	}
}

func renderPage(t *testing.T, page *Page) soup.Root {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, page.Render(&buf))
	doc := soup.HTMLParse(buf.String())
	require.NoError(t, doc.Error)
	return doc
}

func playerItems(t *testing.T, doc soup.Root) []soup.Root {
	t.Helper()

	container := doc.Find("ul", "id", PlayersContainerID)
	require.NoError(t, container.Error)
	return container.FindAll("li")
}

func detailsClass(t *testing.T, item soup.Root) string {
	t.Helper()

	for _, div := range item.FindAll("div") {
		class := div.Attrs()["class"]
		if hasClass(class, classDetails) {
			return class
		}
	}
	t.Fatalf("item has no details block")
	return ""
}

func TestRenderPlayers_OneItemPerRecord(t *testing.T) {
	second := rex()
	second.ID = 4
	second.Name = "Fido"
	second.TeamID = nil

	items, err := RenderPlayers([]player.Player{rex(), second})
	require.NoError(t, err)
	require.Len(t, items, 2)

	var buf bytes.Buffer
	for _, item := range items {
		require.NoError(t, html.Render(&buf, item))
	}
	doc := soup.HTMLParse(buf.String())

	lis := doc.FindAll("li")
	require.Len(t, lis, 2)
	assert.Equal(t, "ID 1", lis[0].Find("h2").Text())
	assert.Equal(t, "Name Rex", lis[0].Find("h3").Text())
	assert.Equal(t, "ID 4", lis[1].Find("h2").Text())
	assert.Equal(t, "Name Fido", lis[1].Find("h3").Text())
	assert.Equal(t, "TeamID null", lis[1].Find("p").Text())

	img := lis[0].Find("img")
	assert.Equal(t, "x", img.Attrs()["src"])
	assert.Equal(t, "Rex", img.Attrs()["alt"])
}

func TestRenderPlayers_DetailsStartHidden(t *testing.T) {
	items, err := RenderPlayers([]player.Player{rex()})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, html.Render(&buf, items[0]))
	item := soup.HTMLParse(buf.String()).Find("li")

	assert.Equal(t, "hidden playerDetails", detailsClass(t, item))

	var details []string
	for _, div := range item.FindAll("div") {
		for _, p := range div.FindAll("p") {
			details = append(details, p.Text())
		}
	}
	assert.Equal(t, []string{"Lab", "Injured", "t1", "t2", "3"}, details)

	var labels []string
	for _, button := range item.FindAll("button") {
		labels = append(labels, button.Text())
	}
	assert.Equal(t, []string{"See Details", "Remove Player"}, labels)

	var actions []string
	for _, form := range item.FindAll("form") {
		actions = append(actions, form.Attrs()["action"])
	}
	assert.Equal(t, []string{"/players/1/details", "/players/1/delete"}, actions)
}

func TestRenderPlayers_Errors(t *testing.T) {
	_, err := RenderPlayers(nil)
	assert.True(t, crerr.Is(err, usecase.ErrRender), "nil list: %v", err)

	noID := rex()
	noID.ID = 0
	_, err = RenderPlayers([]player.Player{rex(), noID})
	assert.True(t, crerr.Is(err, usecase.ErrRender), "missing id: %v", err)

	items, err := RenderPlayers([]player.Player{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPageReplacePlayers_FullSnapshot(t *testing.T) {
	page := NewPage("Puppy Bowl")

	second := rex()
	second.ID = 2
	require.NoError(t, page.ReplacePlayers([]player.Player{rex(), second}))
	assert.Equal(t, 2, page.PlayerCount())

	only := rex()
	only.ID = 9
	require.NoError(t, page.ReplacePlayers([]player.Player{only}))
	assert.Equal(t, 1, page.PlayerCount())

	items := playerItems(t, renderPage(t, page))
	require.Len(t, items, 1)
	assert.Equal(t, "ID 9", items[0].Find("h2").Text())
}

func TestPageReplacePlayers_RenderErrorKeepsPriorChildren(t *testing.T) {
	page := NewPage("Puppy Bowl")
	require.NoError(t, page.ReplacePlayers([]player.Player{rex()}))

	err := page.ReplacePlayers(nil)
	require.Error(t, err)
	assert.True(t, crerr.Is(err, usecase.ErrRender))

	items := playerItems(t, renderPage(t, page))
	require.Len(t, items, 1)
	assert.Equal(t, "Name Rex", items[0].Find("h3").Text())
}

func TestPageToggleDetails_OnlyTouchesOneItem(t *testing.T) {
	page := NewPage("Puppy Bowl")
	second := rex()
	second.ID = 2
	second.Name = "Bolt"
	require.NoError(t, page.ReplacePlayers([]player.Player{rex(), second}))

	require.True(t, page.ToggleDetails(2))

	items := playerItems(t, renderPage(t, page))
	require.Len(t, items, 2)
	assert.Equal(t, "hidden playerDetails", detailsClass(t, items[0]))
	assert.Equal(t, "playerDetails", detailsClass(t, items[1]))

	require.True(t, page.ToggleDetails(2))
	items = playerItems(t, renderPage(t, page))
	assert.Equal(t, "hidden playerDetails", detailsClass(t, items[0]))
	assert.Equal(t, "hidden playerDetails", detailsClass(t, items[1]))

	assert.False(t, page.ToggleDetails(42))
}

func TestPageRender_DocumentSkeleton(t *testing.T) {
	page := NewPage("Puppy Bowl")
	doc := renderPage(t, page)

	assert.NoError(t, doc.Find("ul", "id", PlayersContainerID).Error)
	teams := doc.Find("div", "id", TeamsContainerID)
	require.NoError(t, teams.Error)
	assert.Empty(t, teams.Children())

	form := doc.Find("form", "id", NewPlayerFormID)
	require.NoError(t, form.Error)
	assert.Equal(t, "/players", form.Attrs()["action"])

	var names []string
	for _, input := range form.FindAll("input") {
		names = append(names, input.Attrs()["name"])
	}
	assert.Equal(t, []string{FieldTitle, FieldBreed, FieldStatus, FieldImageURL, FieldTeamID}, names)
}

func TestPageFormValues_Remembered(t *testing.T) {
	page := NewPage("Puppy Bowl")
	in := player.NewPlayer{Name: "Rex", Breed: "Lab", Status: "bench", ImageURL: "http://img", TeamID: "7"}
	page.SetFormValues(in)

	assert.Equal(t, in, page.FormValues())

	form := renderPage(t, page).Find("form", "id", NewPlayerFormID)
	values := map[string]string{}
	for _, input := range form.FindAll("input") {
		values[input.Attrs()["name"]] = input.Attrs()["value"]
	}
	assert.Equal(t, map[string]string{
		FieldTitle:    "Rex",
		FieldBreed:    "Lab",
		FieldStatus:   "bench",
		FieldImageURL: "http://img",
		FieldTeamID:   "7",
	}, values)
}

func TestPageRender_EscapesPlayerText(t *testing.T) {
	page := NewPage("Puppy Bowl")
	p := rex()
	p.Name = `<script>alert("x")</script>`
	require.NoError(t, page.ReplacePlayers([]player.Player{p}))

	var buf bytes.Buffer
	require.NoError(t, page.Render(&buf))
	assert.False(t, strings.Contains(buf.String(), "<script>"))
}

func TestNewPlayerFromForm(t *testing.T) {
	values := url.Values{
		"title":    {"Rex"},
		"breed":    {"Lab"},
		"status":   {"field"},
		"imageUrl": {"http://img"},
		"teamId":   {"abc"},
		"name":     {"ignored"},
	}

	got := NewPlayerFromForm(values)
	assert.Equal(t, player.NewPlayer{
		Name:     "Rex",
		Breed:    "Lab",
		Status:   "field",
		ImageURL: "http://img",
		TeamID:   "abc",
	}, got)

	assert.Equal(t, player.NewPlayer{}, NewPlayerFromForm(url.Values{}))
}
