package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/bhetghat/bhetghat-server/models"
	"github.com/bhetghat/bhetghat-server/utils"
)

func strp(s string) *string { return &s }

// The confirmation email's attachments must be exactly the non-null
// eventFile values among the referenced products.
func TestAttachmentPaths(t *testing.T) {
	dir := t.TempDir()
	store, err := utils.NewLocalStore(dir)
	require.NoError(t, err)

	products := []models.Product{
		{Title: "With file", EventFile: strp("/images/111.pdf")},
		{Title: "No file"},
		{Title: "Empty file", EventFile: strp("")},
		{Title: "Second file", EventFile: strp("/images/222.zip")},
	}

	paths := AttachmentPaths(store, products, nil)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "111.pdf"), paths[0])
	assert.Equal(t, filepath.Join(dir, "222.zip"), paths[1])
}

func TestAttachmentPathsSingleFileAmongTwo(t *testing.T) {
	store, err := utils.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	products := []models.Product{
		{Title: "Free talk"},
		{Title: "Workshop", EventFile: strp("/images/333.pdf")},
	}

	paths := AttachmentPaths(store, products, nil)
	assert.Len(t, paths, 1)
}

func TestAttachmentPathsSkipsRemoteURLs(t *testing.T) {
	store, err := utils.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	var skipped []string
	logf := func(msg string, kv ...interface{}) {
		for i := 0; i+1 < len(kv); i += 2 {
			if kv[i] == "file" {
				skipped = append(skipped, kv[i+1].(string))
			}
		}
	}

	products := []models.Product{
		{EventFile: strp("https://res.cloudinary.com/demo/raw/upload/v1/bhetghat/abc.pdf")},
		{EventFile: strp("/images/444.pdf")},
	}

	paths := AttachmentPaths(store, products, logf)
	require.Len(t, paths, 1)
	assert.Contains(t, paths[0], "444.pdf")
	assert.Len(t, skipped, 1)
}

func TestAttachmentPathsNoFiles(t *testing.T) {
	store, err := utils.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	paths := AttachmentPaths(store, []models.Product{{Title: "a"}, {Title: "b"}}, nil)
	assert.Empty(t, paths)
}

type stubMailer struct {
	err  error
	sent int
}

func (m *stubMailer) SendVerification(to, link string) error { return m.err }

func (m *stubMailer) SendOrderConfirmation(to, name string, attachments []string) error {
	m.sent++
	return m.err
}

// The status persisted to the database must always match the status
// reported to the caller, for both email outcomes.
func TestCreateOrderPersistsConfirmationOutcome(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	run := func(mt *mtest.T, mailErr error, wantStatus string) {
		cfg := mockConfig(mt)
		store, err := utils.NewLocalStore(mt.TempDir())
		require.NoError(mt, err)
		mailer := &stubMailer{err: mailErr}

		pid := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(),
			mtest.CreateCursorResponse(0, "bhetghat.products", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: pid},
				{Key: "title", Value: "Meetup"},
			}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		)

		body := fmt.Sprintf(`{"name":"Asha","email":"asha@example.com","productIds":[%q],"totalPrice":25}`, pid.Hex())
		w := serve(http.MethodPost, "/api/orders", CreateOrder(cfg, store, mailer),
			postJSON("/api/orders", body))

		require.Equal(mt, http.StatusCreated, w.Code)
		assert.Contains(mt, w.Body.String(), wantStatus)
		assert.Equal(mt, 1, mailer.sent)

		// The order is inserted, the products looked up for attachments,
		// and the final status written back.
		for _, want := range []string{"insert", "find", "update"} {
			evt := mt.GetStartedEvent()
			require.NotNil(mt, evt)
			require.Equal(mt, want, evt.CommandName)
			if want == "update" {
				status := evt.Command.Lookup("updates", "0", "u", "$set", "status")
				assert.Equal(mt, wantStatus, status.StringValue())
			}
		}
	}

	mt.Run("email failure persists confirmation_failed", func(mt *mtest.T) {
		run(mt, errors.New("smtp down"), models.OrderConfirmationFailed)
	})

	mt.Run("email success persists confirmed", func(mt *mtest.T) {
		run(mt, nil, models.OrderConfirmed)
	})
}
