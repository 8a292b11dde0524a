package importer

import (
	"context"
	"net/http"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/emersion/go-webdav"
	"github.com/emersion/go-webdav/carddav"

	apperrors "github.com/emurenMRz/vdeck/internal/errors"
	"github.com/emurenMRz/vdeck/internal/logging"
)

// AddressBookClient is the part of the CardDAV client the importer uses.
type AddressBookClient interface {
	FindCurrentUserPrincipal(ctx context.Context) (string, error)
	FindAddressBookHomeSet(ctx context.Context, principal string) (string, error)
	FindAddressBooks(ctx context.Context, addressBookHomeSet string) ([]carddav.AddressBook, error)
	QueryAddressBook(ctx context.Context, addressBook string, query *carddav.AddressBookQuery) ([]carddav.AddressObject, error)
}

var _ AddressBookClient = (*carddav.Client)(nil)

// NewCardDAVClient connects to endpoint, with basic auth when user is set.
func NewCardDAVClient(endpoint, user, password string, timeout time.Duration) (*carddav.Client, error) {
	var httpClient webdav.HTTPClient = &http.Client{Timeout: timeout}
	if user != "" {
		httpClient = webdav.HTTPClientWithBasicAuth(httpClient, user, password)
	}
	client, err := carddav.NewClient(httpClient, endpoint)
	if err != nil {
		return nil, apperrors.ConfigError("invalid CardDAV endpoint").WithContext("url", endpoint)
	}
	return client, nil
}

// FromCardDAV discovers the user's address books and returns every card in
// them.
func FromCardDAV(ctx context.Context, client AddressBookClient) ([]vcard.Card, error) {
	log := logging.WithFields(logging.String("component", "importer"), logging.String("source", "carddav"))

	principal, err := client.FindCurrentUserPrincipal(ctx)
	if err != nil {
		return nil, apperrors.ConnectionError("find current user principal", err)
	}
	homeSet, err := client.FindAddressBookHomeSet(ctx, principal)
	if err != nil {
		return nil, apperrors.ConnectionError("find address book home set", err).WithContext("principal", principal)
	}
	books, err := client.FindAddressBooks(ctx, homeSet)
	if err != nil {
		return nil, apperrors.ConnectionError("find address books", err).WithContext("home_set", homeSet)
	}

	query := &carddav.AddressBookQuery{
		DataRequest: carddav.AddressDataRequest{AllProp: true},
	}

	var cards []vcard.Card
	for _, book := range books {
		objects, err := client.QueryAddressBook(ctx, book.Path, query)
		if err != nil {
			return cards, apperrors.ConnectionError("query address book", err).WithContext("path", book.Path)
		}
		for _, obj := range objects {
			if obj.Card == nil {
				continue
			}
			cards = append(cards, obj.Card)
		}
		log.Info("Address book fetched", logging.String("path", book.Path), logging.String("name", book.Name), logging.Int("cards", len(objects)))
	}
	return cards, nil
}
