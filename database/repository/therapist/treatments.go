package therapistRepo

import (
	"context"
	"fmt"

	"plenura/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateTreatment inserts a new offered treatment.
func (repo *MongoTherapistRepo) CreateTreatment(ctx context.Context, treatment *models.TherapistService) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := repo.treatmentColl.InsertOne(ctx, treatment); err != nil {
		return fmt.Errorf("error creating treatment: %w", err)
	}
	return nil
}

// GetTreatment retrieves a treatment by ID.
func (repo *MongoTherapistRepo) GetTreatment(ctx context.Context, treatmentID string) (*models.TherapistService, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var treatment models.TherapistService
	if err := repo.treatmentColl.FindOne(ctx, bson.M{"id": treatmentID}).Decode(&treatment); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching treatment %s: %w", treatmentID, err)
	}
	return &treatment, nil
}

// UpdateTreatment applies a partial update to a treatment owned by the
// therapist.
func (repo *MongoTherapistRepo) UpdateTreatment(ctx context.Context, therapistID, treatmentID string, fields map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"id": treatmentID, "therapist_id": therapistID}
	res, err := repo.treatmentColl.UpdateOne(ctx, filter, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("error updating treatment %s: %w", treatmentID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListTreatments returns a therapist's treatments, optionally active only.
func (repo *MongoTherapistRepo) ListTreatments(ctx context.Context, therapistID string, activeOnly bool) ([]models.TherapistService, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"therapist_id": therapistID}
	if activeOnly {
		filter["active"] = true
	}
	cursor, err := repo.treatmentColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing treatments: %w", err)
	}
	defer cursor.Close(ctx)

	var treatments []models.TherapistService
	for cursor.Next(ctx) {
		var t models.TherapistService
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("error decoding treatment: %w", err)
		}
		treatments = append(treatments, t)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return treatments, nil
}
