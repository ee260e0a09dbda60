package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/corgi/levelgen"
	"github.com/milk9111/corgi/levels"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

const defaultPrompt = "A spooky graveyard with floating islands"

var (
	textWhite  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	textYellow = color.NRGBA{R: 0xfa, G: 0xcc, B: 0x15, A: 0xff}
	textGrey   = color.NRGBA{R: 0xa3, G: 0xa3, B: 0xa3, A: 0xff}
	btnGreen   = color.NRGBA{R: 0x16, G: 0xa3, B: 0x4a, A: 0xff}
	btnPurple  = color.NRGBA{R: 0x93, G: 0x33, B: 0xea, A: 0xff}
	btnDark    = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
)

// uiFace is the built-in basic font as a text.Face, so the overlays need no
// font assets.
func uiFace() *ebtext.Face {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	return &face
}

func centered() widget.WidgetOpt {
	return widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})
}

func newLabel(face *ebtext.Face, s string, c color.Color) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(s, face, c),
		widget.TextOpts.WidgetOpts(centered()),
	)
}

func newButton(face *ebtext.Face, label string, bg color.NRGBA, onClick func()) *widget.Button {
	img := imageui.NewNineSliceColor(bg)
	pressed := imageui.NewNineSliceColor(color.NRGBA{R: bg.R / 2, G: bg.G / 2, B: bg.B / 2, A: bg.A})
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: img, Hover: img, Pressed: pressed}),
		widget.ButtonOpts.Text(label, face, &widget.ButtonTextColor{Idle: textWhite}),
		widget.ButtonOpts.TextPadding(&widget.Insets{Top: 6, Bottom: 6, Left: 14, Right: 14}),
		widget.ButtonOpts.WidgetOpts(centered()),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func newPanel(bg color.NRGBA, minW, minH int) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(bg)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(minW, minH),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
}

func newRow() *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
		)),
		widget.ContainerOpts.WidgetOpts(centered()),
	)
}

func overlay(panel *widget.Container) *ebitenui.UI {
	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

// Menu is the title overlay: play the current level, or describe a new one
// and generate it.
type Menu struct {
	UI *ebitenui.UI

	theme      *widget.TextInput
	difficulty levelgen.Difficulty
	length     levelgen.Length
	density    levelgen.Density
	status     *widget.Text

	game      *Game
	clipboard bool
}

func NewMenu(g *Game) *Menu {
	face := uiFace()
	def := levelgen.DefaultParams()
	m := &Menu{
		game:       g,
		difficulty: def.Difficulty,
		length:     def.Length,
		density:    def.Density,
		clipboard:  clipboard.Init() == nil,
	}

	panel := newPanel(color.NRGBA{A: 210}, 560, 420)
	panel.AddChild(newLabel(face, "SUPER CORGI ADVENTURE", textYellow))
	panel.AddChild(newLabel(face, "Arrow keys or WASD to move. Space to jump. Z to bite.", textGrey))
	panel.AddChild(newLabel(face, "Find the doghouse!", textGrey))
	panel.AddChild(newButton(face, "PLAY LEVEL", btnGreen, g.start))

	panel.AddChild(newLabel(face, "LEVEL GENERATOR", textWhite))
	selectors := newRow()
	var diffBtn, lenBtn, densBtn *widget.Button
	diffBtn = newButton(face, "Difficulty: "+string(m.difficulty), btnDark, func() {
		m.difficulty = m.difficulty.Next()
		diffBtn.SetText("Difficulty: " + string(m.difficulty))
	})
	lenBtn = newButton(face, "Size: "+string(m.length), btnDark, func() {
		m.length = m.length.Next()
		lenBtn.SetText("Size: " + string(m.length))
	})
	densBtn = newButton(face, "Enemies: "+string(m.density), btnDark, func() {
		m.density = m.density.Next()
		densBtn.SetText("Enemies: " + string(m.density))
	})
	selectors.AddChild(diffBtn, lenBtn, densBtn)
	panel.AddChild(selectors)

	m.theme = widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(widget.WidgetOpts.MinSize(480, 28), centered()),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     imageui.NewNineSliceColor(color.NRGBA{R: 0x17, G: 0x17, B: 0x17, A: 0xff}),
			Disabled: imageui.NewNineSliceColor(color.NRGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}),
		}),
		widget.TextInputOpts.Color(&widget.TextInputColor{Idle: textWhite, Disabled: textGrey, Caret: textWhite}),
		widget.TextInputOpts.Padding(&widget.Insets{Left: 8, Right: 8, Top: 6, Bottom: 6}),
		widget.TextInputOpts.Face(face),
		widget.TextInputOpts.Placeholder("Describe a level (e.g. 'Ice Kingdom')"),
		widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
			g.generate()
		}),
	)
	m.theme.SetText(defaultPrompt)
	panel.AddChild(m.theme)

	actions := newRow()
	actions.AddChild(newButton(face, "GENERATE", btnPurple, g.generate))
	if m.clipboard {
		actions.AddChild(newButton(face, "PASTE", btnDark, m.paste))
	}
	panel.AddChild(actions)

	m.status = newLabel(face, "", textGrey)
	panel.AddChild(m.status)

	m.UI = overlay(panel)
	return m
}

// Params is the generation request described by the menu controls.
func (m *Menu) Params() levelgen.Params {
	return levelgen.Params{
		Theme:      strings.TrimSpace(m.theme.GetText()),
		Difficulty: m.difficulty,
		Length:     m.length,
		Density:    m.density,
	}
}

func (m *Menu) SetStatus(s string) {
	const maxLen = 80
	if len(s) > maxLen {
		s = s[:maxLen-3] + "..."
	}
	m.status.Label = s
}

// paste takes the clipboard as either a whole level description or, failing
// that, a theme prompt.
func (m *Menu) paste() {
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return
	}
	if d, err := levels.Parse(data); err == nil && len(d.Platforms) > 0 {
		m.game.useLevel(d)
		return
	}
	m.theme.SetText(strings.TrimSpace(string(data)))
}

func newGeneratingUI() *ebitenui.UI {
	face := uiFace()
	panel := newPanel(color.NRGBA{A: 230}, 400, 160)
	panel.AddChild(newLabel(face, "BUILDING WORLD...", textWhite))
	return overlay(panel)
}

// endScreen is shared by game over and level complete.
type endScreen struct {
	UI *ebitenui.UI

	scoreLabel string
	score      *widget.Text
}

func newEndScreen(g *Game, title, scoreLabel, back, again string) *endScreen {
	face := uiFace()
	e := &endScreen{scoreLabel: scoreLabel}
	panel := newPanel(color.NRGBA{R: 0x14, G: 0x14, B: 0x14, A: 220}, 400, 200)
	panel.AddChild(newLabel(face, title, textWhite))
	e.score = newLabel(face, "", textYellow)
	panel.AddChild(e.score)

	buttons := newRow()
	buttons.AddChild(
		newButton(face, back, btnDark, g.returnToMenu),
		newButton(face, again, btnGreen, g.start),
	)
	panel.AddChild(buttons)
	e.UI = overlay(panel)
	return e
}

func (e *endScreen) SetScore(score int) {
	e.score.Label = fmt.Sprintf("%s: %d", e.scoreLabel, score)
}
