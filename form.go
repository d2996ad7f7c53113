package main

import (
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/msgfall/common"
	"golang.design/x/clipboard"
)

// SubmitForm is the strip at the bottom of the window with a text input and
// a Submit button. Enter and the button both submit. The input is cleared
// only once the store has accepted the message.
type SubmitForm struct {
	UI    *ebitenui.UI
	input *widget.TextInput

	paste bool
}

// NewSubmitForm builds the form. onSubmit receives the raw input text and
// reports whether it was sent; blank text is never sent.
func NewSubmitForm(face text.Face, paste bool, onSubmit func(text string) bool) *SubmitForm {
	f := &SubmitForm{paste: paste}

	stripImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x22, G: 0x22, B: 0x28, A: 230})
	btnTextColor := &widget.ButtonTextColor{Idle: color.Black}

	submit := func(raw string) {
		if onSubmit == nil || strings.TrimSpace(raw) == "" {
			return
		}
		onSubmit(raw)
	}

	f.input = widget.NewTextInput(
		widget.TextInputOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/2, 32),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
		),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     imageui.NewNineSliceColor(color.RGBA{245, 245, 245, 255}),
			Disabled: imageui.NewNineSliceColor(color.RGBA{200, 200, 200, 255}),
		}),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:     color.Black,
			Disabled: color.Gray{Y: 120},
			Caret:    color.Black,
		}),
		widget.TextInputOpts.Face(&face),
		widget.TextInputOpts.Placeholder("Type a message"),
		widget.TextInputOpts.SubmitOnEnter(true),
		widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
			submit(args.InputText)
		}),
	)

	button := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{
			Idle:    imageui.NewNineSliceColor(color.RGBA{180, 180, 180, 255}),
			Hover:   imageui.NewNineSliceColor(color.RGBA{200, 200, 200, 255}),
			Pressed: imageui.NewNineSliceColor(color.RGBA{160, 160, 160, 255}),
		}),
		widget.ButtonOpts.Text("Submit", &face, btnTextColor),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(120, 32),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
		),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			submit(f.input.GetText())
		}),
	)

	strip := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(stripImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 20, Right: 20}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth, common.FormHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
				StretchHorizontal:  true,
			}),
		),
	)
	strip.AddChild(f.input)
	strip.AddChild(button)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(strip)

	f.UI = &ebitenui.UI{Container: root}
	return f
}

func (f *SubmitForm) Update() {
	if f.paste && f.input.IsFocused() {
		ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
		if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyV) {
			if txt := clipboard.Read(clipboard.FmtText); len(txt) > 0 {
				// Single line input: newlines would submit half a message.
				pasted := strings.ReplaceAll(string(txt), "\n", " ")
				f.input.SetText(f.input.GetText() + pasted)
			}
		}
	}
	f.UI.Update()
}

func (f *SubmitForm) Draw(screen *ebiten.Image) {
	f.UI.Draw(screen)
}

// Clear empties the input after a successful submission.
func (f *SubmitForm) Clear() {
	f.input.SetText("")
}
