package domain

import (
	"strconv"
	"strings"
)

// CommandKind enumerates every button action the bot understands
type CommandKind int

const (
	CmdUnknown CommandKind = iota

	CmdMenu
	CmdCatalog
	CmdCategory // ID = category
	CmdProduct  // ID = product

	CmdCartShow
	CmdCartAdd    // ID = product
	CmdCartRemove // ID = product
	CmdCartClear

	CmdCheckout
	CmdDelivery    // Arg = delivery method
	CmdCommentSkip
	CmdEditField // Arg = field name
	CmdOrderConfirm
	CmdOrderCancel
	CmdPay // ID = order, Arg = payment method

	CmdMyOrders
	CmdOrderShow // ID = order
	CmdSupport

	CmdAdmin
	CmdAdminCategories
	CmdAdminCategoryNew
	CmdAdminCategoryRename // ID = category
	CmdAdminCategoryToggle // ID = category
	CmdAdminProducts       // ID = category
	CmdAdminProductNew     // ID = category
	CmdAdminProductShow    // ID = product
	CmdAdminProductEdit    // ID = product, Arg = field
	CmdAdminProductToggle  // ID = product
	CmdAdminOrders
	CmdAdminOrder       // ID = order
	CmdAdminOrderStatus // ID = order, Arg = status
	CmdAdminStats
)

// Command is a callback payload decoded once at the boundary.
// Handlers match on Kind instead of splitting strings.
type Command struct {
	Kind CommandKind
	ID   int64
	Arg  string
}

// ParseCommand decodes a callback data token. Unrecognized or
// malformed tokens come back as CmdUnknown.
func ParseCommand(data string) Command {
	parts := strings.Split(strings.TrimSpace(data), ":")

	switch parts[0] {
	case "menu":
		return Command{Kind: CmdMenu}
	case "catalog":
		return Command{Kind: CmdCatalog}
	case "cat":
		return withID(CmdCategory, parts, 1)
	case "prod":
		return withID(CmdProduct, parts, 1)
	case "cart":
		if len(parts) == 1 {
			return Command{Kind: CmdCartShow}
		}
		switch parts[1] {
		case "add":
			return withID(CmdCartAdd, parts, 2)
		case "rem":
			return withID(CmdCartRemove, parts, 2)
		case "clear":
			return Command{Kind: CmdCartClear}
		case "checkout":
			return Command{Kind: CmdCheckout}
		}
	case "del":
		if len(parts) == 2 {
			return Command{Kind: CmdDelivery, Arg: parts[1]}
		}
	case "comment":
		if len(parts) == 2 && parts[1] == "skip" {
			return Command{Kind: CmdCommentSkip}
		}
	case "edit":
		if len(parts) == 2 {
			return Command{Kind: CmdEditField, Arg: parts[1]}
		}
	case "order":
		if len(parts) >= 2 {
			switch parts[1] {
			case "confirm":
				return Command{Kind: CmdOrderConfirm}
			case "cancel":
				return Command{Kind: CmdOrderCancel}
			case "show":
				return withID(CmdOrderShow, parts, 2)
			}
		}
	case "pay":
		if len(parts) == 3 {
			cmd := withID(CmdPay, parts, 2)
			cmd.Arg = parts[1]
			return cmd
		}
	case "orders":
		return Command{Kind: CmdMyOrders}
	case "support":
		return Command{Kind: CmdSupport}
	case "adm":
		return parseAdmin(parts)
	}

	return Command{Kind: CmdUnknown}
}

func parseAdmin(parts []string) Command {
	if len(parts) == 1 {
		return Command{Kind: CmdAdmin}
	}
	switch parts[1] {
	case "cats":
		return Command{Kind: CmdAdminCategories}
	case "cat":
		if len(parts) >= 3 {
			switch parts[2] {
			case "new":
				return Command{Kind: CmdAdminCategoryNew}
			case "ren":
				return withID(CmdAdminCategoryRename, parts, 3)
			case "tog":
				return withID(CmdAdminCategoryToggle, parts, 3)
			}
		}
	case "prods":
		return withID(CmdAdminProducts, parts, 2)
	case "prod":
		if len(parts) >= 3 {
			switch parts[2] {
			case "new":
				return withID(CmdAdminProductNew, parts, 3)
			case "show":
				return withID(CmdAdminProductShow, parts, 3)
			case "tog":
				return withID(CmdAdminProductToggle, parts, 3)
			case "edit":
				if len(parts) == 5 {
					cmd := withID(CmdAdminProductEdit, parts, 3)
					cmd.Arg = parts[4]
					return cmd
				}
			}
		}
	case "orders":
		return Command{Kind: CmdAdminOrders}
	case "order":
		return withID(CmdAdminOrder, parts, 2)
	case "status":
		if len(parts) == 4 {
			cmd := withID(CmdAdminOrderStatus, parts, 2)
			cmd.Arg = parts[3]
			return cmd
		}
	case "stats":
		return Command{Kind: CmdAdminStats}
	}
	return Command{Kind: CmdUnknown}
}

func withID(kind CommandKind, parts []string, idx int) Command {
	if len(parts) <= idx {
		return Command{Kind: CmdUnknown}
	}
	id, err := strconv.ParseInt(parts[idx], 10, 64)
	if err != nil || id <= 0 {
		return Command{Kind: CmdUnknown}
	}
	return Command{Kind: kind, ID: id}
}
