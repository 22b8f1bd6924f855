package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/omercouncil/budget-portal/internal/logger"
)

const component = "Sink"

// StatusUpdate is the payload posted to the external automation endpoint
// when a task's rating is edited.
type StatusUpdate struct {
	ID     string `json:"id"`
	Rating int    `json:"rating"`
}

// Notifier posts status edits to the external sink. The call is fire and
// forget: the endpoint's response is not observable and retry/ack
// semantics belong to the automation on the other side.
type Notifier struct {
	URL    string
	Client *retryablehttp.Client
	Logger *logger.Logger
}

func NewNotifier(url string, appLogger *logger.Logger) *Notifier {
	client := retryablehttp.NewClient()
	client.RetryMax = 1
	client.RetryWaitMin = 250 * time.Millisecond
	client.RetryWaitMax = time.Second
	client.HTTPClient.Timeout = 10 * time.Second
	client.Logger = nil

	return &Notifier{URL: url, Client: client, Logger: appLogger}
}

// Payload builds the wire payload for one edit.
func Payload(id string, rating int) ([]byte, error) {
	if id == "" {
		return nil, fmt.Errorf("status update needs an id")
	}
	return json.Marshal(StatusUpdate{ID: id, Rating: rating})
}

// NotifyAsync posts the update in the background. Failures are logged
// and dropped; the local state already carries the optimistic edit and
// the next feed fetch reconciles either way.
func (n *Notifier) NotifyAsync(id string, rating int) {
	if n.URL == "" {
		return
	}
	body, err := Payload(id, rating)
	if err != nil {
		n.Logger.Error(component, "Failed to build status payload: id=%s error=%v", id, err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(body))
		if err != nil {
			n.Logger.Error(component, "Failed to build status request: id=%s error=%v", id, err)
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := n.Client.Do(req)
		if err != nil {
			n.Logger.Warn(component, "Status write-back failed: id=%s error=%v", id, err)
			return
		}
		resp.Body.Close()
		n.Logger.Debug(component, "Status write-back sent: id=%s rating=%d status=%d", id, rating, resp.StatusCode)
	}()
}
