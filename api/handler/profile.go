package handler

import (
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskhive/backend/api/transport"
	"github.com/taskhive/backend/internal/validation"
	"github.com/taskhive/backend/pkg/httpcontext"
	profileUC "github.com/taskhive/backend/usecase/profile"
)

const uploadFailedMessage = "Failed to upload profile picture. Please try again."

type ProfileHandler struct {
	baseHandler
	uc *profileUC.UseCase
}

func NewProfileHandler(uc *profileUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Get the caller's profile
// @Tags profile
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.GetProfile(stdCtx, userID)
	if err != nil {
		h.logger.Error("profile lookup failed", zap.Error(err))
		h.respondJSON(ctx, http.StatusInternalServerError, transport.NewFailure("Failed to load profile", err))
		return
	}

	resp := transport.ProfileResponse{Name: user.Name}
	if url := h.uc.ImageURL(user); url != "" {
		resp.Image = &url
	}
	h.respondJSON(ctx, http.StatusOK, resp)
}

// @Summary Upload a profile picture
// @Tags profile
// @Accept multipart/form-data
// @Router /upload-profile-picture [post]
func (h *ProfileHandler) UploadPicture(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	// A missing file is a validation failure, not a transport error, so the
	// header is resolved first and handed to the rule set as-is.
	fh, err := ctx.FormFile("image")
	if err != nil {
		fh = nil
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	failure, err := validation.First(stdCtx,
		validation.NewField("image", fh,
			validation.Required(),
			validation.Image(),
			validation.Mimes("jpeg", "png", "jpg", "gif"),
			validation.MaxKilobytes(2048)),
	)
	if err != nil {
		h.respondUploadError(ctx, err)
		return
	}
	if failure != nil {
		h.respondJSON(ctx, http.StatusUnprocessableEntity, transport.UploadFailureResponse{
			Status:  transport.StatusError,
			Message: failure.Message,
			Toast:   true,
		})
		return
	}

	file, err := fh.Open()
	if err != nil {
		h.respondUploadError(ctx, err)
		return
	}
	defer file.Close()

	// The stored extension comes from the sniffed content, never from the
	// client-supplied filename.
	mime, err := mimetype.DetectReader(file)
	if err != nil {
		h.respondUploadError(ctx, err)
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		h.respondUploadError(ctx, err)
		return
	}

	url, err := h.uc.UploadPicture(stdCtx, userID, mime.Extension(), file)
	if err != nil {
		h.respondUploadError(ctx, err)
		return
	}

	h.respondJSON(ctx, http.StatusOK, transport.UploadResponse{
		Status:   transport.StatusSuccess,
		Message:  "Profile picture uploaded successfully!",
		ImageURL: url,
		Toast:    true,
	})
}

func (h *ProfileHandler) respondUploadError(ctx *fasthttp.RequestCtx, err error) {
	h.logger.Error("profile picture upload failed", zap.Error(err))
	h.respondJSON(ctx, http.StatusInternalServerError, transport.UploadFailureResponse{
		Status:  transport.StatusError,
		Message: uploadFailedMessage,
		Error:   err.Error(),
		Toast:   true,
	})
}
