package httpapi

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/safar/storefront/internal/addressbook"
	"github.com/safar/storefront/internal/models"
	"github.com/safar/storefront/internal/notify"
	"github.com/safar/storefront/internal/provinces"
)

func (h *handler) login(c *gin.Context) {
	var creds models.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		badRequest(c, err)
		return
	}
	result, err := h.api.Auth.Login(c.Request.Context(), creds)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, result, "Signed in")
}

// proxy binds the request body into T and relays it to an auth endpoint
// whose answer is passed through untouched.
func proxy[T any](call func(*gin.Context, T) (json.RawMessage, error), message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in T
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err)
			return
		}
		data, err := call(c, in)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, data, message)
	}
}

func (h *handler) signup(c *gin.Context) {
	proxy(func(c *gin.Context, in models.Signup) (json.RawMessage, error) {
		return h.api.Auth.Signup(c.Request.Context(), in)
	}, "Account created, check your email for the activation code")(c)
}

func (h *handler) checkCode(c *gin.Context) {
	proxy(func(c *gin.Context, in models.CheckCode) (json.RawMessage, error) {
		return h.api.Auth.CheckCode(c.Request.Context(), in)
	}, "Account activated")(c)
}

func (h *handler) retryActive(c *gin.Context) {
	proxy(func(c *gin.Context, in models.EmailOnly) (json.RawMessage, error) {
		return h.api.Auth.RetryActive(c.Request.Context(), in)
	}, "Activation code sent")(c)
}

func (h *handler) retryPassword(c *gin.Context) {
	proxy(func(c *gin.Context, in models.EmailOnly) (json.RawMessage, error) {
		return h.api.Auth.RetryPassword(c.Request.Context(), in)
	}, "Password reset code sent")(c)
}

func (h *handler) changePassword(c *gin.Context) {
	proxy(func(c *gin.Context, in models.ChangePassword) (json.RawMessage, error) {
		return h.api.Auth.ChangePassword(c.Request.Context(), in)
	}, "Password changed")(c)
}

func (h *handler) profile(c *gin.Context) {
	data, err := h.api.Auth.Profile(c.Request.Context(), principal(c).Token)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, data, "ok")
}

func (h *handler) updateProfile(c *gin.Context) {
	var in models.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	p := principal(c)
	// Role changes go through the admin endpoints.
	in.ID = p.UserID
	in.Role = ""

	user, err := h.api.Users.UpdateUser(c.Request.Context(), p.Token, p.UserID, in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, user, "Profile updated")
}

func (h *handler) listAddresses(c *gin.Context) {
	p := principal(c)
	ok(c, addressbook.Listing{Addresses: h.book.List(c.Request.Context(), p.Token, p.UserID)}, "ok")
}

func (h *handler) saveAddress(c *gin.Context, id int64) {
	var in models.AddressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	p := principal(c)

	listing, err := h.book.Save(c.Request.Context(), p.Token, p.UserID, id, in)
	if err != nil {
		fail(c, err)
		return
	}
	if id == 0 {
		created(c, listing, "Address saved")
		return
	}
	ok(c, listing, "Address updated")
}

func (h *handler) createAddress(c *gin.Context) {
	h.saveAddress(c, 0)
}

func (h *handler) updateAddress(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	h.saveAddress(c, id)
}

func (h *handler) deleteAddress(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	p := principal(c)

	list, err := h.book.Delete(c.Request.Context(), p.Token, p.UserID, id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, addressbook.Listing{Addresses: list}, "Address deleted")
}

type locationsView struct {
	Provinces []provinces.Province  `json:"provinces"`
	Districts []provinces.District  `json:"districts"`
	Wards     []provinces.Ward      `json:"wards"`
	Selection addressbook.Selection `json:"selection"`
}

// locationsCascade walks ?province=&district=&ward= codes through the
// picker. ?q= filters the deepest list that was loaded.
func (h *handler) locationsCascade(c *gin.Context) {
	ctx := c.Request.Context()
	picker := addressbook.NewPicker(h.locations)

	list, err := picker.Provinces(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	view := locationsView{Provinces: list, Districts: []provinces.District{}, Wards: []provinces.Ward{}}

	if code := c.Query("province"); code != "" {
		if view.Districts, err = picker.SelectProvince(ctx, provinces.Code(code)); err != nil {
			fail(c, err)
			return
		}
	}
	if code := c.Query("district"); code != "" {
		if view.Wards, err = picker.SelectDistrict(ctx, provinces.Code(code)); err != nil {
			fail(c, err)
			return
		}
	}
	if code := c.Query("ward"); code != "" {
		if err := picker.SelectWard(provinces.Code(code)); err != nil {
			fail(c, err)
			return
		}
	}
	view.Selection = picker.Selection()

	if q := c.Query("q"); q != "" {
		switch {
		case len(view.Wards) > 0:
			view.Wards = provinces.Match(view.Wards, q)
		case len(view.Districts) > 0:
			view.Districts = provinces.Match(view.Districts, q)
		default:
			view.Provinces = provinces.Match(view.Provinces, q)
		}
	}

	ok(c, view, "ok")
}

func (h *handler) notifications(c *gin.Context) {
	toasts := h.board.Active(principal(c).UserID)
	if toasts == nil {
		toasts = []notify.Toast{}
	}
	ok(c, toasts, "ok")
}

func (h *handler) dismissNotification(c *gin.Context) {
	if !h.board.Dismiss(principal(c).UserID, c.Param("id")) {
		fail(c, errNotificationNotFound)
		return
	}
	ok(c, nil, "Dismissed")
}
