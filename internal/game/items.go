package game

import "github.com/mveiss/hollow-manor/internal/content"

// PickupResult reports what happened when an item entered the
// inventory. Cursed items apply their linked curse on pickup.
type PickupResult struct {
	Item  string
	Curse *CurseResult
}

// EquipResult reports an equip attempt. Equipping a protective item
// whose curse is active cures it on the spot.
type EquipResult struct {
	Equipped   bool
	CuredCurse string
}

// UseResult reports a consumable use.
type UseResult struct {
	Used       bool
	CuredCurse string
}

// HasItem reports whether the player owns the item, in inventory or
// equipped.
func (e *Engine) HasItem(itemID string) bool {
	return contains(e.state.Inventory, itemID) || contains(e.state.Equipped, itemID)
}

// HasAllItems reports whether every listed item is owned.
func (e *Engine) HasAllItems(itemIDs []string) bool {
	for _, id := range itemIDs {
		if !e.HasItem(id) {
			return false
		}
	}
	return true
}

// AddItem puts an item into the inventory. Duplicate pickups are
// no-ops, as are ids missing from content. Picking up a cursed item
// applies its linked curse.
func (e *Engine) AddItem(itemID string) *PickupResult {
	item, ok := e.content.Item(itemID)
	if !ok || e.HasItem(itemID) {
		return nil
	}
	e.state.Inventory = append(e.state.Inventory, itemID)
	result := &PickupResult{Item: itemID}
	if item.CurseEffect != nil {
		result.Curse = e.ApplyCurse(item.CurseEffect.Curse)
	}
	return result
}

// RemoveItem drops an item from inventory or equipment. Returns false
// when the item is not owned.
func (e *Engine) RemoveItem(itemID string) bool {
	if removed, ok := remove(e.state.Inventory, itemID); ok {
		e.state.Inventory = removed
		return true
	}
	if removed, ok := remove(e.state.Equipped, itemID); ok {
		e.state.Equipped = removed
		return true
	}
	return false
}

// Equip moves an item from inventory to the equipped set. The item
// must be equippable and its slot free. An active curse matched by a
// protective item is cured immediately.
func (e *Engine) Equip(itemID string) EquipResult {
	item, ok := e.content.Item(itemID)
	if !ok || !item.CanEquip || !contains(e.state.Inventory, itemID) {
		return EquipResult{}
	}
	if item.EquipSlot != "" && e.slotOccupied(item.EquipSlot) {
		return EquipResult{}
	}

	inventory, _ := remove(e.state.Inventory, itemID)
	e.state.Inventory = inventory
	e.state.Equipped = append(e.state.Equipped, itemID)

	result := EquipResult{Equipped: true}
	if item.ProtectsFrom != "" && e.state.ActiveCurses[item.ProtectsFrom] {
		if e.RemoveCurse(item.ProtectsFrom) {
			result.CuredCurse = item.ProtectsFrom
		}
	}
	return result
}

// Unequip moves an item back to the inventory. It never re-applies a
// cured curse.
func (e *Engine) Unequip(itemID string) bool {
	equipped, ok := remove(e.state.Equipped, itemID)
	if !ok {
		return false
	}
	e.state.Equipped = equipped
	e.state.Inventory = append(e.state.Inventory, itemID)
	return true
}

// UseConsumable consumes an item. A protective consumable cures its
// own curse; a generic cleansing consumable cures targetCurse, which
// the player chooses when several curses are active. The item is only
// consumed when a curse was actually cured.
func (e *Engine) UseConsumable(itemID, targetCurse string) UseResult {
	item, ok := e.content.Item(itemID)
	if !ok || !item.Consumable || !e.HasItem(itemID) {
		return UseResult{}
	}
	target := item.ProtectsFrom
	if target == "" {
		target = targetCurse
	}
	if target == "" || !e.RemoveCurse(target) {
		return UseResult{}
	}
	e.RemoveItem(itemID)
	return UseResult{Used: true, CuredCurse: target}
}

// ProtectiveItemFor returns the content item protecting from the
// curse, if any.
func (e *Engine) ProtectiveItemFor(curseID string) (content.Item, bool) {
	curse, ok := e.content.Curse(curseID)
	if !ok || curse.ProtectiveItem == "" {
		return content.Item{}, false
	}
	return e.content.Item(curse.ProtectiveItem)
}

func (e *Engine) slotOccupied(slot string) bool {
	for _, id := range e.state.Equipped {
		if item, ok := e.content.Item(id); ok && item.EquipSlot == slot {
			return true
		}
	}
	return false
}

func contains(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) ([]string, bool) {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i:i], ids[i+1:]...), true
		}
	}
	return ids, false
}
