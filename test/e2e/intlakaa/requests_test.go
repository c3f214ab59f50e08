package intlakaa_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/intlakaa/pkg/adminsdk"
	"github.com/stretchr/testify/require"
)

// TestRequestLifecycle submits a lead publicly and manages it as an admin.
func TestRequestLifecycle(t *testing.T) {
	c := setupAPIContainer(t)
	client := adminsdk.NewClient(c.BaseURL)
	ctx := t.Context()
	owner := bootstrapOwner(t, c, client)

	_, err := client.SubmitRequest(ctx, adminsdk.CreateRequestRequest{Name: "Ahmed", Phone: "+966500000000"})
	requireStatus(t, err, http.StatusBadRequest)

	created, err := client.SubmitRequest(ctx, adminsdk.CreateRequestRequest{
		Name:          "Ahmed",
		Phone:         "+966500000000",
		StoreURL:      "https://shop.example.com",
		MonthlySalary: "50000",
	})
	require.NoError(t, err)
	require.Equal(t, adminsdk.StatusPending, created.Status)

	_, err = client.NewSessionFromToken("").ListRequests(ctx, "")
	requireStatus(t, err, http.StatusUnauthorized)

	leads, err := owner.ListRequests(ctx, "")
	require.NoError(t, err)
	require.Len(t, leads, 1, "the invalid submission must not be stored")
	require.Equal(t, created.ID, leads[0].ID)

	updated, err := owner.UpdateRequestStatus(ctx, created.ID, adminsdk.StatusCompleted)
	require.NoError(t, err)
	require.Equal(t, adminsdk.StatusCompleted, updated.Status)

	pending, err := owner.ListRequests(ctx, adminsdk.StatusPending)
	require.NoError(t, err)
	require.Empty(t, pending)

	require.NoError(t, owner.DeleteRequest(ctx, created.ID))
	err = owner.DeleteRequest(ctx, created.ID)
	requireStatus(t, err, http.StatusNotFound)

	_, err = owner.GetRequest(ctx, created.ID)
	requireStatus(t, err, http.StatusNotFound)
}
