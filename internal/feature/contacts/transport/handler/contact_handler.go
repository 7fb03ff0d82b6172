// Package handler はcontactsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"contacts_backend/internal/feature/auth/transport/middleware"
	"contacts_backend/internal/feature/contacts/domain/entity"
	"contacts_backend/internal/feature/contacts/transport/http/dto"
	"contacts_backend/internal/feature/contacts/usecase"
)

// ContactsUsecase は連絡先操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type ContactsUsecase interface {
	// Create は新しい連絡先を登録します。
	Create(ctx context.Context, contact *entity.Contact) error
	// Get は指定ユーザーの連絡先をIDで取得します。
	Get(ctx context.Context, userID, id uint) (*entity.Contact, error)
	// Search は任意のフィルタで連絡先を検索します。
	Search(ctx context.Context, userID uint, firstName, lastName, email string) ([]entity.Contact, error)
	// Update は既存の連絡先の内容を置き換えます。
	Update(ctx context.Context, userID, id uint, updated *entity.Contact) (*entity.Contact, error)
	// Delete は指定ユーザーの連絡先を削除します。
	Delete(ctx context.Context, userID, id uint) error
	// UpcomingBirthdays は今後days日以内に誕生日を迎える連絡先を返します。
	UpcomingBirthdays(ctx context.Context, userID uint, days int) ([]entity.Contact, error)
}

// ContactHandler は連絡先操作のHTTPリクエストを処理します。
// すべてのエンドポイントはAuthRequiredミドルウェアの後段でのみ使用できます。
type ContactHandler struct {
	contacts ContactsUsecase
}

// NewContactHandler はContactHandlerの新しいインスタンスを生成します。
func NewContactHandler(contacts ContactsUsecase) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// Create は連絡先作成APIエンドポイントを処理します。
// - バリデーションエラー時は400を返却
// - 同一ユーザー内のメール重複時は409を返却
// - 成功時は201で作成済み連絡先を返却
func (h *ContactHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}

	var req dto.ContactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("contact validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	contact := req.ToEntity(user.ID)
	if err := h.contacts.Create(c.Request.Context(), contact); err != nil {
		if errors.Is(err, usecase.ErrContactEmailExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "contact email already exists"})
			return
		}
		slog.Error("failed to create contact", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create contact"})
		return
	}

	c.JSON(http.StatusCreated, dto.ContactOutFromEntity(contact))
}

// List は連絡先一覧・検索APIエンドポイントを処理します。
// first_name, last_name, emailクエリパラメータは任意の部分一致フィルタです。
func (h *ContactHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}

	contacts, err := h.contacts.Search(
		c.Request.Context(),
		user.ID,
		c.Query("first_name"),
		c.Query("last_name"),
		c.Query("email"),
	)
	if err != nil {
		slog.Error("failed to search contacts", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search contacts"})
		return
	}

	c.JSON(http.StatusOK, dto.ContactListFromEntities(contacts))
}

// Get は連絡先取得APIエンドポイントを処理します。
func (h *ContactHandler) Get(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}

	id, ok := contactID(c)
	if !ok {
		return
	}

	contact, err := h.contacts.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, usecase.ErrContactNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
			return
		}
		slog.Error("failed to get contact", "error", err, "user_id", user.ID, "contact_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get contact"})
		return
	}

	c.JSON(http.StatusOK, dto.ContactOutFromEntity(contact))
}

// Update は連絡先更新APIエンドポイントを処理します。
// PUTセマンティクス: リクエストボディの内容で全フィールドを置き換えます。
func (h *ContactHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}

	id, ok := contactID(c)
	if !ok {
		return
	}

	var req dto.ContactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("contact validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	updated, err := h.contacts.Update(c.Request.Context(), user.ID, id, req.ToEntity(user.ID))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrContactNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
		case errors.Is(err, usecase.ErrContactEmailExists):
			c.JSON(http.StatusConflict, gin.H{"error": "contact email already exists"})
		default:
			slog.Error("failed to update contact", "error", err, "user_id", user.ID, "contact_id", id)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update contact"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ContactOutFromEntity(updated))
}

// Delete は連絡先削除APIエンドポイントを処理します。
// 成功時は204 No Contentを返します。
func (h *ContactHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}

	id, ok := contactID(c)
	if !ok {
		return
	}

	if err := h.contacts.Delete(c.Request.Context(), user.ID, id); err != nil {
		if errors.Is(err, usecase.ErrContactNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
			return
		}
		slog.Error("failed to delete contact", "error", err, "user_id", user.ID, "contact_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete contact"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Birthdays は今後の誕生日検索APIエンドポイントを処理します。
// daysクエリパラメータ（デフォルト7）で日数ウィンドウを指定します。
func (h *ContactHandler) Birthdays(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
		return
	}

	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a non-negative integer"})
			return
		}
		days = parsed
	}

	contacts, err := h.contacts.UpcomingBirthdays(c.Request.Context(), user.ID, days)
	if err != nil {
		slog.Error("failed to list upcoming birthdays", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list upcoming birthdays"})
		return
	}

	c.JSON(http.StatusOK, dto.ContactListFromEntities(contacts))
}

// contactID は:idパスパラメータを検証して返します。
// 不正な値の場合は400を書き込み、falseを返します。
func contactID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact id"})
		return 0, false
	}
	return uint(id), true
}
