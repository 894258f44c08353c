package addressbook

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/safar/storefront/internal/logger"
	"github.com/safar/storefront/internal/models"
	"go.uber.org/zap"
)

const DefaultCountry = "Vietnam"

// IncompleteError lists the required address fields left empty.
type IncompleteError struct {
	Fields []string
}

func (e *IncompleteError) Error() string {
	return "missing address fields: " + strings.Join(e.Fields, ", ")
}

type AddressAPI interface {
	ListUserAddresses(ctx context.Context, token string, userID int64) ([]models.Address, error)
	CreateAddress(ctx context.Context, token string, in models.AddressInput) (*models.Address, error)
	UpdateAddress(ctx context.Context, token string, id int64, in models.AddressInput) (*models.Address, error)
	DeleteAddress(ctx context.Context, token string, id int64) error
}

// Book manages a user's saved shipping addresses.
type Book struct {
	api      AddressAPI
	validate *validator.Validate
	log      *zap.Logger
}

func NewBook(api AddressAPI, log *zap.Logger) *Book {
	return &Book{api: api, validate: validator.New(), log: logger.OrNop(log).Named("addressbook")}
}

type Listing struct {
	Addresses  []models.Address `json:"addresses"`
	SelectedID int64            `json:"selectedId,omitempty"`
}

// List never fails: a load error yields an empty book.
func (b *Book) List(ctx context.Context, token string, userID int64) []models.Address {
	list, err := b.api.ListUserAddresses(ctx, token, userID)
	if err != nil {
		b.log.Warn("list addresses failed", zap.Int64("user_id", userID), zap.Error(err))
		return []models.Address{}
	}
	return list
}

// Save creates an address when id is 0 and updates it otherwise. After a
// create the newest address, last in the list, becomes the selection.
func (b *Book) Save(ctx context.Context, token string, userID, id int64, in models.AddressInput) (*Listing, error) {
	in.Street = strings.TrimSpace(in.Street)
	in.Ward = strings.TrimSpace(in.Ward)
	in.District = strings.TrimSpace(in.District)
	in.Province = strings.TrimSpace(in.Province)
	if err := b.check(in); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Country) == "" {
		in.Country = DefaultCountry
	}
	in.UserID = userID

	if id == 0 {
		if _, err := b.api.CreateAddress(ctx, token, in); err != nil {
			return nil, fmt.Errorf("save address: %w", err)
		}
	} else {
		if _, err := b.api.UpdateAddress(ctx, token, id, in); err != nil {
			return nil, fmt.Errorf("save address %d: %w", id, err)
		}
	}

	listing := &Listing{Addresses: b.List(ctx, token, userID), SelectedID: id}
	if id == 0 && len(listing.Addresses) > 0 {
		listing.SelectedID = listing.Addresses[len(listing.Addresses)-1].ID
	}
	return listing, nil
}

func (b *Book) Delete(ctx context.Context, token string, userID, id int64) ([]models.Address, error) {
	if err := b.api.DeleteAddress(ctx, token, id); err != nil {
		return nil, fmt.Errorf("delete address %d: %w", id, err)
	}
	return b.List(ctx, token, userID), nil
}

func (b *Book) check(in models.AddressInput) error {
	err := b.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	missing := &IncompleteError{}
	for _, fe := range verrs {
		missing.Fields = append(missing.Fields, strings.ToLower(fe.Field()))
	}
	return missing
}
