package appointments

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Collection is the Firestore collection holding appointment documents.
const Collection = "appointments"

// Repository provides persistence for appointments. Implementations exist
// for Firestore (managed deployments), Postgres (self-hosted) and an
// in-memory store used by tests.
type Repository interface {
	// Create persists a new appointment and returns it with its
	// store-assigned id and creation timestamp filled in.
	Create(ctx context.Context, appt *Appointment) (*Appointment, error)
	// List returns every appointment ordered by date then time, ascending.
	List(ctx context.Context) ([]*Appointment, error)
	// GetByID returns a single appointment or ErrNotFound.
	GetByID(ctx context.Context, id string) (*Appointment, error)
	// UpdateStatus overwrites only the status field of an existing record.
	UpdateStatus(ctx context.Context, id string, s Status) error
}

// FirestoreRepository stores appointments in a Firestore collection.
type FirestoreRepository struct {
	client *firestore.Client
}

// NewFirestoreRepository creates a Firestore-backed repository.
func NewFirestoreRepository(client *firestore.Client) *FirestoreRepository {
	if client == nil {
		panic("appointments: firestore client required")
	}
	return &FirestoreRepository{client: client}
}

var _ Repository = (*FirestoreRepository)(nil)

// Create writes a new document. The createdAt field carries the
// serverTimestamp sentinel, so the write time is assigned by the store; the
// document is read back once so callers see the resolved timestamp.
func (r *FirestoreRepository) Create(ctx context.Context, appt *Appointment) (*Appointment, error) {
	ref := r.client.Collection(Collection).NewDoc()
	if _, err := ref.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("appointments: create document: %w", err)
	}

	snap, err := ref.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("appointments: read back created document: %w", err)
	}
	created, err := docToAppointment(snap.Ref.ID, snap)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// List fetches the whole collection with the compound (date, time) ascending
// order the dashboard expects. No pagination; the practice is small.
func (r *FirestoreRepository) List(ctx context.Context) ([]*Appointment, error) {
	iter := r.client.Collection(Collection).
		OrderBy("date", firestore.Asc).
		OrderBy("time", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var appts []*Appointment
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("appointments: list documents: %w", err)
		}
		appt, err := docToAppointment(snap.Ref.ID, snap)
		if err != nil {
			return nil, err
		}
		appts = append(appts, appt)
	}
	return appts, nil
}

// GetByID loads one document, mapping Firestore's NotFound to ErrNotFound.
func (r *FirestoreRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	snap, err := r.client.Collection(Collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("appointments: get document: %w", err)
	}
	return docToAppointment(id, snap)
}

// UpdateStatus issues a partial-field update touching only status.
func (r *FirestoreRepository) UpdateStatus(ctx context.Context, id string, s Status) error {
	_, err := r.client.Collection(Collection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: string(s)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("appointments: update status: %w", err)
	}
	return nil
}

func docToAppointment(id string, snap *firestore.DocumentSnapshot) (*Appointment, error) {
	var appt Appointment
	if err := snap.DataTo(&appt); err != nil {
		return nil, fmt.Errorf("appointments: decode document %s: %w", id, err)
	}
	appt.ID = id
	// Documents written before the status field existed default to upcoming.
	if appt.Status == "" {
		appt.Status = StatusUpcoming
	}
	return &appt, nil
}
