// Package supabase implements the repositories over the Supabase REST
// (PostgREST) API. It expects the same schema the postgres package
// migrates.
package supabase

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"rentcar-backend/internal/domain"
	"rentcar-backend/internal/repository"

	"github.com/pkg/errors"
	supa "github.com/supabase-community/supabase-go"
)

const (
	tableCustomers = "customers"
	tableCars      = "cars"
	tableRentals   = "rentals"
	tableAdmins    = "admins"

	returnRepresentation = "representation"
	uniqueViolation      = "(23505)"
)

// NewClient builds a Supabase client for the given project URL and
// service role key.
func NewClient(url, serviceKey string) (*supa.Client, error) {
	client, err := supa.NewClient(url, serviceKey, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create supabase client")
	}
	return client, nil
}

// NewStore wires every Supabase repository over one client.
func NewStore(client *supa.Client) *repository.Store {
	return &repository.Store{
		CustomerRepository: NewCustomerRepository(client),
		CarRepository:      NewCarRepository(client),
		RentalRepository:   NewRentalRepository(client),
		AdminRepository:    NewAdminRepository(client),
		StatsRepository:    NewStatsRepository(client),
	}
}

// mapError translates PostgREST failures into the repository sentinels.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), uniqueViolation) {
		return errors.Wrapf(domain.ErrDuplicate, "%s: %s", op, err.Error())
	}
	return errors.Wrap(err, op)
}

// decode unmarshals a PostgREST array response into dst.
func decode(op string, data []byte, dst interface{}) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return errors.Wrapf(err, "%s: decode response", op)
	}
	return nil
}

// affected counts the rows returned with return=representation.
func affected(op string, data []byte) (int64, error) {
	var rows []json.RawMessage
	if err := decode(op, data, &rows); err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

func notFound(op string) error {
	return errors.Wrap(domain.ErrNotFound, op)
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}

type executor interface {
	Execute() ([]byte, int64, error)
}

// execute runs a PostgREST request and gives up when ctx is done. The
// client has no context support, so an abandoned request may still land.
func execute(ctx context.Context, q executor) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, _, err := q.Execute()
		done <- result{data: data, err: err}
	}()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		return res.data, res.err
	}
}
