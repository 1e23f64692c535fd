package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next     key.Binding
	Back     key.Binding
	Language key.Binding
	Quit     key.Binding

	// intro
	Know     key.Binding
	TellMore key.Binding
	Skip     key.Binding

	// play
	Colors  key.Binding
	Brush   key.Binding
	Eraser  key.Binding
	Bigger  key.Binding
	Smaller key.Binding
	Undo    key.Binding
	Clear   key.Binding
	Record  key.Binding

	// survey
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Yes    key.Binding
	No     key.Binding

	// end
	Restart key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Next:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		Back:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "back")),
		Language: key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "language")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),

		Know:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "I know it")),
		TellMore: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "tell me more")),
		Skip:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip")),

		Colors:  key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8"), key.WithHelp("1-8", "colour")),
		Brush:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "brush")),
		Eraser:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "eraser")),
		Bigger:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "size")),
		Smaller: key.NewBinding(key.WithKeys("-", "_")),
		Undo:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Clear:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Record:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "record")),

		Up:     key.NewBinding(key.WithKeys("up", "k")),
		Down:   key.NewBinding(key.WithKeys("down", "j")),
		Left:   key.NewBinding(key.WithKeys("left", "h")),
		Right:  key.NewBinding(key.WithKeys("right", "l")),
		Select: key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "choose")),
		Yes:    key.NewBinding(key.WithKeys("y")),
		No:     key.NewBinding(key.WithKeys("n")),

		Restart: key.NewBinding(key.WithKeys("r", "enter"), key.WithHelp("r", "play again")),
	}
}

// screenKeys is the help shown for one screen.
type screenKeys []key.Binding

func (k screenKeys) ShortHelp() []key.Binding { return k }
func (k screenKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k} }
