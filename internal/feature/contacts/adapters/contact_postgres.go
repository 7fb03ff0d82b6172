// Package adapters はcontactsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"contacts_backend/internal/feature/contacts/domain/entity"
	"contacts_backend/internal/feature/contacts/usecase"
)

// pgUniqueViolation はPostgreSQLの一意制約違反のSQLSTATEコードです。
const pgUniqueViolation = "23505"

// contactPostgres はContactRepositoryインターフェースのPostgreSQL実装です。
type contactPostgres struct {
	db *gorm.DB
}

var _ usecase.ContactRepository = (*contactPostgres)(nil)

// NewContactPostgres は指定されたDB接続でcontactPostgresリポジトリの新しいインスタンスを生成します。
func NewContactPostgres(db *gorm.DB) *contactPostgres {
	return &contactPostgres{db: db}
}

// Create は連絡先をデータベースに追加します。
// 同一ユーザー内でメールアドレスが重複する場合、usecase.ErrContactEmailExistsを返します。
func (r *contactPostgres) Create(ctx context.Context, contact *entity.Contact) error {
	if err := r.db.WithContext(ctx).Create(contact).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return usecase.ErrContactEmailExists
		}
		return err
	}
	return nil
}

// FindByID は指定ユーザーの連絡先をIDで取得します。
// 存在しない（または所有者が異なる）場合、usecase.ErrContactNotFoundを返します。
func (r *contactPostgres) FindByID(ctx context.Context, userID, id uint) (*entity.Contact, error) {
	var contact entity.Contact
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrContactNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// Search は指定ユーザーの連絡先を部分一致フィルタで検索します。
// フィルタはすべて任意で、大文字小文字を区別しません。
func (r *contactPostgres) Search(ctx context.Context, userID uint, firstName, lastName, email string) ([]entity.Contact, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if firstName != "" {
		q = q.Where("LOWER(first_name) LIKE LOWER(?)", "%"+firstName+"%")
	}
	if lastName != "" {
		q = q.Where("LOWER(last_name) LIKE LOWER(?)", "%"+lastName+"%")
	}
	if email != "" {
		q = q.Where("LOWER(email) LIKE LOWER(?)", "%"+email+"%")
	}

	var contacts []entity.Contact
	if err := q.Order("id ASC").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// Update は既存の連絡先を保存します。
func (r *contactPostgres) Update(ctx context.Context, contact *entity.Contact) error {
	if err := r.db.WithContext(ctx).Save(contact).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return usecase.ErrContactEmailExists
		}
		return err
	}
	return nil
}

// Delete は指定ユーザーの連絡先を削除します。
// 該当レコードがない場合、usecase.ErrContactNotFoundを返します。
func (r *contactPostgres) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&entity.Contact{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrContactNotFound
	}
	return nil
}

// FindWithBirthday は誕生日が設定された連絡先をすべて返します。
// 日付ウィンドウの判定はusecase側で行います（SQLの方言差を避けるため）。
func (r *contactPostgres) FindWithBirthday(ctx context.Context, userID uint) ([]entity.Contact, error) {
	var contacts []entity.Contact
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND birthday IS NOT NULL", userID).
		Order("id ASC").
		Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}
