package cart

import "foodtruck-storefront/internal/models"

// RequiresCustomization reports whether adding the item needs a
// customization step. Items with neither sizes nor options go straight
// into the cart.
func RequiresCustomization(item models.MenuItem) bool {
	return len(item.Sizes) > 0 || len(item.Options) > 0
}

// Customization is the transient state of one open customization dialog:
// the target item plus tentatively chosen size and option ids. It lives
// only while the dialog is open and never leaks unconfirmed selections
// into the cart.
type Customization struct {
	item      models.MenuItem
	sizeID    *int
	optionIDs []int
	done      bool
}

// NewCustomization opens a customization for the item. The pending size
// defaults to the item's first size when sizes exist; no options are
// preselected.
func NewCustomization(item models.MenuItem) *Customization {
	p := &Customization{item: item}
	if len(item.Sizes) > 0 {
		id := item.Sizes[0].ID
		p.sizeID = &id
	}
	return p
}

// Item returns the item under customization
func (p *Customization) Item() models.MenuItem {
	return p.item
}

// SelectSize sets the pending size id
func (p *Customization) SelectSize(sizeID int) {
	p.sizeID = &sizeID
}

// SizeID returns the pending size id, or nil when the item has no sizes
func (p *Customization) SizeID() *int {
	return p.sizeID
}

// ToggleOption flips an option id in or out of the pending selection
func (p *Customization) ToggleOption(optionID int) {
	for i, id := range p.optionIDs {
		if id == optionID {
			p.optionIDs = append(p.optionIDs[:i], p.optionIDs[i+1:]...)
			return
		}
	}
	p.optionIDs = append(p.optionIDs, optionID)
}

// OptionSelected reports whether an option id is pending
func (p *Customization) OptionSelected(optionID int) bool {
	for _, id := range p.optionIDs {
		if id == optionID {
			return true
		}
	}
	return false
}

// Confirm resolves the pending ids against the item's size and option
// objects and adds the result to the cart with quantity 1. Ids that no
// longer exist on the item are ignored, so a dialog that outlived a
// catalog refresh cannot commit stale selections. The dialog is closed:
// a second Confirm, or a Confirm after Cancel, does nothing.
func (p *Customization) Confirm(c *Cart) *Line {
	if p.done {
		return nil
	}
	p.done = true

	var size *models.MenuItemSize
	if p.sizeID != nil {
		for i := range p.item.Sizes {
			if p.item.Sizes[i].ID == *p.sizeID {
				size = &p.item.Sizes[i]
				break
			}
		}
	}

	var options []models.MenuItemOption
	for _, id := range p.optionIDs {
		for _, option := range p.item.Options {
			if option.ID == id {
				options = append(options, option)
				break
			}
		}
	}

	c.Add(p.item, 1, size, options)

	var sizeID *int
	if size != nil {
		sizeID = &size.ID
	}
	optionIDs := make([]int, len(options))
	for i, option := range options {
		optionIDs[i] = option.ID
	}

	key := LineKey(p.item.ID, sizeID, optionIDs)
	for _, line := range c.Lines() {
		if line.Key == key {
			return line
		}
	}
	return nil
}

// Cancel closes the dialog and discards the pending state without
// touching the cart.
func (p *Customization) Cancel() {
	p.done = true
	p.sizeID = nil
	p.optionIDs = nil
}
