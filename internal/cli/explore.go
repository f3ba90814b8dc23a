package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bstviz/pkg/bst"
	"github.com/matzehuels/bstviz/pkg/errors"
)

var (
	exploreCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Underline(true)
	exploreKeyStyle    = lipgloss.NewStyle().Foreground(colorWhite)
	exploreHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// exploreCommand opens an interactive view of one tree.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		index     int
		delimiter string
		fromJSON  string
	)

	cmd := &cobra.Command{
		Use:   "explore [keys...]",
		Short: "Step through a tree in order and delete keys interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			trees, err := c.readTrees(cmd, args, delimiter, fromJSON)
			if err != nil {
				return err
			}
			if index < 0 || index >= len(trees) {
				return errors.New(errors.ErrCodeNotFound, "tree %d not found (input has %d)", index, len(trees))
			}

			t := trees[index]
			p := tea.NewProgram(NewExploreModel(t), tea.WithContext(cmd.Context()), tea.WithOutput(cmd.ErrOrStderr()))
			final, err := p.Run()
			if err != nil {
				return err
			}
			if m, ok := final.(ExploreModel); ok && m.Deleted > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), joinInts(t.Values(bst.InOrder)))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&index, "tree", 0, "index of the tree to explore")
	cmd.Flags().StringVar(&delimiter, "delimiter", "", "token separating trees")
	cmd.Flags().StringVar(&fromJSON, "from-json", "", "read the tree from a file written by export")
	return cmd
}

// =============================================================================
// ExploreModel - Interactive in-order navigation
// =============================================================================

// ExploreModel is the bubbletea model for explore. The cursor moves along
// the in-order sequence through successor and predecessor links.
type ExploreModel struct {
	Tree    *bst.Tree
	Cursor  *bst.Node
	Deleted int
	status  string
}

// NewExploreModel places the cursor on the smallest key.
func NewExploreModel(t *bst.Tree) ExploreModel {
	return ExploreModel{Tree: t, Cursor: t.Min()}
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.status = ""
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "right", "l", "n":
		if next := bst.Successor(m.Cursor); next != nil {
			m.Cursor = next
		}
	case "left", "h", "p":
		if prev := bst.Predecessor(m.Cursor); prev != nil {
			m.Cursor = prev
		}
	case "home", "g":
		m.Cursor = m.Tree.Min()
	case "end", "G":
		m.Cursor = m.Tree.Max()
	case "up", "k":
		if m.Cursor != nil && m.Cursor.Parent() != nil {
			m.Cursor = m.Cursor.Parent()
		}
	case "d":
		m.deleteCursor()
	}
	return m, nil
}

// deleteCursor removes the node under the cursor. A node with two children
// takes over its successor's payload and stays put; otherwise the cursor moves
// to the in-order neighbour, which deletion leaves untouched.
func (m *ExploreModel) deleteCursor() {
	n := m.Cursor
	if n == nil {
		return
	}
	v := n.Value
	next := n
	if n.Left() == nil || n.Right() == nil {
		next = bst.Successor(n)
		if next == nil {
			next = bst.Predecessor(n)
		}
	}
	if m.Tree.DeleteNode(n) {
		m.Deleted++
		m.status = fmt.Sprintf("deleted %d", v)
	}
	m.Cursor = next
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explore Tree"))
	b.WriteString("\n")
	b.WriteString(exploreHelpStyle.Render("←/→ predecessor/successor  ↑ parent  g/G min/max  d delete  q quit"))
	b.WriteString("\n\n")

	if m.Tree.IsEmpty() {
		b.WriteString(StyleDim.Render("  (empty tree)"))
		b.WriteString("\n")
		return b.String()
	}

	keys := make([]string, 0, m.Tree.Len())
	m.Tree.Walk(bst.InOrder, func(n *bst.Node) {
		s := strconv.Itoa(n.Value)
		if n == m.Cursor {
			keys = append(keys, exploreCursorStyle.Render(s))
			return
		}
		keys = append(keys, exploreKeyStyle.Render(s))
	})
	b.WriteString("  " + strings.Join(keys, " "))
	b.WriteString("\n\n")

	if m.Cursor != nil {
		b.WriteString(nodeTable(m.Cursor).Render())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d nodes · height %d", m.Tree.Len(), m.Tree.Height())))
	if m.status != "" {
		b.WriteString(StyleDim.Render(" · ") + StyleWarning.Render(m.status))
	}
	b.WriteString("\n")
	return b.String()
}

func nodeTable(n *bst.Node) *table.Table {
	d := n.Display()
	label := "-"
	if text, ok := n.Metadata(); ok {
		label = text
	}
	color := n.Color().String()
	switch n.Color() {
	case bst.Red:
		color = styleRedNode.Render(color)
	case bst.Black:
		color = styleBlackNode.Render(color)
	}

	rows := [][]string{
		{"key", strconv.Itoa(n.Value)},
		{"label", label},
		{"color", color},
		{"parent", nodeRef(n.Parent())},
		{"left", nodeRef(n.Left())},
		{"right", nodeRef(n.Right())},
		{"successor", nodeRef(bst.Successor(n))},
		{"predecessor", nodeRef(bst.Predecessor(n))},
		{"display", displayName(d)},
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorGray).Padding(0, 1)
			}
			return lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)
		})
}

func nodeRef(n *bst.Node) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(n.Value)
}

func displayName(d bst.Display) string {
	switch d.Kind {
	case bst.DisplayLabeled:
		if d.Boxed {
			return "boxed label"
		}
		return "label"
	case bst.DisplayColored:
		return "colored"
	default:
		return "plain"
	}
}
