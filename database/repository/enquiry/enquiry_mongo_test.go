package enquiryRepo

import (
	"context"
	"testing"

	"lawdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestEnquiryRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewMongoEnquiryRepoFromCollection(mt.Coll)

		err := repo.Create(context.Background(), &models.Enquiry{ID: "enq-1", Name: "Grace", Message: "Question about a lease"})
		assert.NoError(t, err)
	})

	mt.Run("get by id", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "id", Value: "enq-1"},
			{Key: "name", Value: "Grace"},
			{Key: "status", Value: models.EnquiryStatusNew},
		}))
		repo := NewMongoEnquiryRepoFromCollection(mt.Coll)

		enquiry, err := repo.GetByID(context.Background(), "enq-1")
		require.NoError(t, err)
		assert.Equal(t, "Grace", enquiry.Name)
		assert.Equal(t, models.EnquiryStatusNew, enquiry.Status)
	})

	mt.Run("not found", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		repo := NewMongoEnquiryRepoFromCollection(mt.Coll)

		_, err := repo.GetByID(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrEnquiryNotFound)
	})
}
