package handlers

import (
	"context"
	"net/http"

	"ride-tracker-backend/internal/models"
)

const contactNotSentMessage = "Email not sent. Configure EMAIL_USER and EMAIL_PASS (Gmail App Password) in backend/.env and restart backend."

// ContactSender relays contact messages; false means not delivered
type ContactSender interface {
	Send(ctx context.Context, email, subject, message string) bool
}

// ContactHandler handles the contact form
type ContactHandler struct {
	sender ContactSender
}

// NewContactHandler creates a new contact handler
func NewContactHandler(sender ContactSender) *ContactHandler {
	return &ContactHandler{sender: sender}
}

// Contact handles POST /api/contact. Delivery failures are reported inside a
// 200 envelope with success=false.
func (h *ContactHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req models.ContactMessage
	if err := decodeJSON(r, &req); err != nil {
		respondServiceError(w, r, err, "contact")
		return
	}
	if err := req.Validate(); err != nil {
		respondServiceError(w, r, err, "contact")
		return
	}

	if !h.sender.Send(r.Context(), *req.Email, *req.Subject, *req.Message) {
		respondOK(w, false, nil, contactNotSentMessage)
		return
	}

	respondOK(w, true, nil, "Email sent")
}
