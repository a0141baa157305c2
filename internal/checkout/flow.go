package checkout

import (
	"strings"

	"curtain_store/internal/apperr"
)

type View string

const (
	ViewCategories    View = "categories"
	ViewVariants      View = "variants"
	ViewProductDetail View = "product_detail"
	ViewServices      View = "services"
	ViewInstallation  View = "installation"
	ViewCart          View = "cart"
	ViewCheckoutForm  View = "checkout_form"
	ViewSubmitted     View = "submitted"
)

// Flow is the single navigation state for a storefront session. Every overlay
// reads it and every user action goes through one of its methods.
type Flow struct {
	View        View   `json:"view"`
	Category    string `json:"category,omitempty"`
	ProductID   string `json:"product_id,omitempty"`
	ReturnTo    View   `json:"return_to,omitempty"`
	OrderNumber string `json:"order_number,omitempty"`
}

func NewFlow() Flow {
	return Flow{View: ViewCategories}
}

func (f *Flow) SelectCategory(category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return apperr.InvalidArgument("category is required")
	}
	if f.View != ViewCategories && f.View != ViewVariants {
		return f.illegal("select a category")
	}
	f.View = ViewVariants
	f.Category = category
	f.ProductID = ""
	return nil
}

func (f *Flow) SelectProduct(productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return apperr.InvalidArgument("product id is required")
	}
	if f.View != ViewVariants {
		return f.illegal("select a product")
	}
	f.View = ViewProductDetail
	f.ProductID = productID
	return nil
}

func (f *Flow) OpenServices() error {
	if f.View != ViewProductDetail && f.View != ViewInstallation {
		return f.illegal("open services")
	}
	f.View = ViewServices
	return nil
}

func (f *Flow) OpenInstallation() error {
	if f.View != ViewServices {
		return f.illegal("open installation options")
	}
	f.View = ViewInstallation
	return nil
}

func (f *Flow) OpenCart() error {
	if !f.browsing() {
		return f.illegal("open the cart")
	}
	f.ReturnTo = f.View
	f.View = ViewCart
	return nil
}

func (f *Flow) ProceedToCheckout(cartItems int) error {
	if f.View != ViewCart {
		return f.illegal("proceed to checkout")
	}
	if cartItems == 0 {
		return ErrCartEmpty
	}
	f.View = ViewCheckoutForm
	return nil
}

// Back replaces the old cross-overlay "back" event: the parent owns the state,
// so stepping back is an ordinary transition.
func (f *Flow) Back() error {
	switch f.View {
	case ViewVariants:
		f.View = ViewCategories
		f.Category = ""
	case ViewProductDetail:
		f.View = ViewVariants
		f.ProductID = ""
	case ViewServices:
		f.View = ViewProductDetail
	case ViewInstallation:
		f.View = ViewServices
	case ViewCart:
		f.View = f.ReturnTo
		if f.View == "" {
			f.View = ViewCategories
		}
		f.ReturnTo = ""
	case ViewCheckoutForm:
		f.View = ViewCart
	case ViewSubmitted:
		*f = NewFlow()
	default:
		return f.illegal("go back")
	}
	return nil
}

// ContinueShopping leaves the confirmation view.
func (f *Flow) ContinueShopping() {
	*f = NewFlow()
}

func (f *Flow) markSubmitted(orderNumber string) {
	f.View = ViewSubmitted
	f.OrderNumber = orderNumber
	f.ReturnTo = ""
}

func (f *Flow) browsing() bool {
	switch f.View {
	case ViewCategories, ViewVariants, ViewProductDetail, ViewServices, ViewInstallation:
		return true
	}
	return false
}

func (f *Flow) illegal(action string) error {
	return apperr.FailedPreconditionf("cannot %s from the %s view", action, f.View)
}

type ActionType string

const (
	ActionSelectCategory   ActionType = "select_category"
	ActionSelectProduct    ActionType = "select_product"
	ActionOpenServices     ActionType = "open_services"
	ActionOpenInstallation ActionType = "open_installation"
	ActionOpenCart         ActionType = "open_cart"
	ActionCheckout         ActionType = "checkout"
	ActionBack             ActionType = "back"
	ActionContinue         ActionType = "continue_shopping"
)

type Action struct {
	Type      ActionType `json:"type" binding:"required"`
	Category  string     `json:"category"`
	ProductID string     `json:"product_id"`
}

// Apply dispatches a navigation action. cartItems is the current cart row count.
func (f *Flow) Apply(a Action, cartItems int) error {
	switch a.Type {
	case ActionSelectCategory:
		return f.SelectCategory(a.Category)
	case ActionSelectProduct:
		return f.SelectProduct(a.ProductID)
	case ActionOpenServices:
		return f.OpenServices()
	case ActionOpenInstallation:
		return f.OpenInstallation()
	case ActionOpenCart:
		return f.OpenCart()
	case ActionCheckout:
		return f.ProceedToCheckout(cartItems)
	case ActionBack:
		return f.Back()
	case ActionContinue:
		f.ContinueShopping()
		return nil
	default:
		return apperr.InvalidArgumentf("unknown navigation action %q", a.Type)
	}
}
