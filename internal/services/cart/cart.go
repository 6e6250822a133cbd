package cart

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"foodtruck-storefront/internal/models"
)

// LineKey derives the identity of a cart line from the logical selection:
// menu item, chosen size, and the set of chosen options. Option ids are
// sorted before joining so that selection order never produces distinct
// keys for the same choice.
func LineKey(menuItemID int, sizeID *int, optionIDs []int) string {
	sizePart := ""
	if sizeID != nil {
		sizePart = strconv.Itoa(*sizeID)
	}

	sorted := make([]int, len(optionIDs))
	copy(sorted, optionIDs)
	sort.Ints(sorted)

	optionParts := make([]string, len(sorted))
	for i, id := range sorted {
		optionParts[i] = strconv.Itoa(id)
	}

	return fmt.Sprintf("%d-%s-%s", menuItemID, sizePart, strings.Join(optionParts, ","))
}

// Line is one distinct (item, size, option-set) selection with its own
// quantity. Size and option values are captured at add time, so a later
// catalog refresh cannot reprice the line.
type Line struct {
	Key      string
	Item     models.MenuItem
	Quantity int
	Size     *models.MenuItemSize
	Options  []models.MenuItemOption
}

// UnitPrice is the price of one unit of this line: the size price when a
// size is chosen, the item base price otherwise, plus all option prices.
// Never pre-multiplied by quantity; displays multiply at render time.
func (l *Line) UnitPrice() float64 {
	price := l.Item.Price
	if l.Size != nil {
		price = l.Size.Price
	}
	for _, option := range l.Options {
		price += option.Price
	}
	return price
}

// Label renders the line for a checkout summary, e.g. "Al Pastor (Large)"
func (l *Line) Label() string {
	if l.Size != nil {
		return fmt.Sprintf("%s (%s)", l.Item.Name, l.Size.Name)
	}
	return l.Item.Name
}

// OptionNames lists the chosen add-on names in selection order
func (l *Line) OptionNames() []string {
	names := make([]string, len(l.Options))
	for i, option := range l.Options {
		names[i] = option.Name
	}
	return names
}

// Cart is the in-memory shopping cart for one checkout session. It keeps
// lines in insertion order and merges logically identical selections.
// It has a single owner and is not safe for concurrent use.
type Cart struct {
	lines []*Line
}

func New() *Cart {
	return &Cart{}
}

// Add puts a selection into the cart. If a line with the same identity
// already exists its quantity is incremented, otherwise a new line is
// appended. A non-positive quantity is a no-op.
func (c *Cart) Add(item models.MenuItem, quantity int, size *models.MenuItemSize, options []models.MenuItemOption) {
	if quantity <= 0 {
		return
	}

	var sizeID *int
	if size != nil {
		sizeCopy := *size
		size = &sizeCopy
		sizeID = &sizeCopy.ID
	}

	optionIDs := make([]int, len(options))
	optionsCopy := make([]models.MenuItemOption, len(options))
	for i, option := range options {
		optionIDs[i] = option.ID
		optionsCopy[i] = option
	}

	key := LineKey(item.ID, sizeID, optionIDs)

	for _, line := range c.lines {
		if line.Key == key {
			line.Quantity += quantity
			return
		}
	}

	c.lines = append(c.lines, &Line{
		Key:      key,
		Item:     item,
		Quantity: quantity,
		Size:     size,
		Options:  optionsCopy,
	})
}

// Remove deletes the line with the given key. Removing an absent key is a
// no-op.
func (c *Cart) Remove(key string) {
	for i, line := range c.lines {
		if line.Key == key {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Lines returns the cart lines in insertion order
func (c *Cart) Lines() []*Line {
	lines := make([]*Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// TotalPrice sums unit price times quantity over all lines. Recomputed on
// every call; totals are never cached across mutations.
func (c *Cart) TotalPrice() float64 {
	total := 0.0
	for _, line := range c.lines {
		total += line.UnitPrice() * float64(line.Quantity)
	}
	return total
}

// TotalItemCount sums quantities across all lines. It drives checkout
// visibility: the checkout affordance shows iff the count is positive.
func (c *Cart) TotalItemCount() int {
	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Clear discards all lines. Called by the checkout flow after a
// successful submission.
func (c *Cart) Clear() {
	c.lines = nil
}
