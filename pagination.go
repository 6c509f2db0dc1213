package logdash

import (
	"strings"

	"github.com/blutspende/logdash/utils"

	"github.com/pkg/errors"
)

const ItemsPerPage = 20

type Navigation string // @Name Navigation

const (
	NavigateFirst    Navigation = "first"
	NavigatePrevious Navigation = "previous"
	NavigateNext     Navigation = "next"
	NavigateLast     Navigation = "last"
)

var Navigations = []Navigation{NavigateFirst, NavigatePrevious, NavigateNext, NavigateLast}

func ParseNavigation(value string) (Navigation, error) {
	navigation := Navigation(strings.ToLower(value))
	if utils.SliceContains(navigation, Navigations) {
		return navigation, nil
	}
	return "", errors.Wrapf(ErrUnknownNavigation, "%q, expected one of %s", value, utils.JoinEnumsAsString(Navigations, ", "))
}

type PageWindow struct {
	ItemsPerPage int  `json:"itemsPerPage" example:"20"` // The number of items per page
	TotalItems   int  `json:"totalItems" example:"47"`   // The total count of items
	TotalPages   int  `json:"totalPages" example:"3"`    // The total pages
	CurrentPage  int  `json:"currentPage" example:"3"`   // The actual page number, starting at 1
	FirstIndex   int  `json:"firstIndex" example:"41"`   // 1-based index of the first item shown, 0 when empty
	LastIndex    int  `json:"lastIndex" example:"47"`    // 1-based index of the last item shown, 0 when empty
	HasPrevious  bool `json:"hasPrevious"`
	HasNext      bool `json:"hasNext"`
} // @Name PageWindow

// NewPageWindow computes the bounds of currentPage. It does not correct a currentPage beyond
// TotalPages; navigation has to be clamped by the caller, see Target.
func NewPageWindow(totalItems, itemsPerPage, currentPage int) PageWindow {
	if totalItems < 0 {
		totalItems = 0
	}

	if itemsPerPage <= 0 {
		// unpaged: one page holding everything
		var totalPages int
		if totalItems > 0 {
			totalPages = 1
		}
		window := PageWindow{
			TotalItems:  totalItems,
			TotalPages:  totalPages,
			CurrentPage: currentPage,
		}
		if totalItems > 0 {
			window.FirstIndex = 1
			window.LastIndex = totalItems
		}
		return window
	}

	var totalPages int
	if totalItems > 0 {
		totalPages = (totalItems + itemsPerPage - 1) / itemsPerPage
	}

	window := PageWindow{
		ItemsPerPage: itemsPerPage,
		TotalItems:   totalItems,
		TotalPages:   totalPages,
		CurrentPage:  currentPage,
		HasPrevious:  totalPages > 0 && currentPage > 1,
		HasNext:      currentPage < totalPages,
	}
	if totalItems > 0 && currentPage >= 1 {
		window.FirstIndex = (currentPage-1)*itemsPerPage + 1
		window.LastIndex = min(currentPage*itemsPerPage, totalItems)
	}
	return window
}

// Target resolves a navigation action into a page clamped to [1, TotalPages]. It reports false
// when there are no pages or the action would not leave the current page.
func (w PageWindow) Target(navigation Navigation) (int, bool) {
	if w.TotalPages == 0 {
		return w.CurrentPage, false
	}

	var target int
	switch navigation {
	case NavigateFirst:
		target = 1
	case NavigatePrevious:
		target = w.CurrentPage - 1
	case NavigateNext:
		target = w.CurrentPage + 1
	case NavigateLast:
		target = w.TotalPages
	default:
		return w.CurrentPage, false
	}

	target = max(1, min(target, w.TotalPages))
	return target, target != w.CurrentPage
}
