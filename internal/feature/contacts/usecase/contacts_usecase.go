// Package usecase はcontactsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"time"

	"contacts_backend/internal/feature/contacts/domain/entity"
)

// defaultBirthdayWindowDays は誕生日検索のデフォルトの日数です。
const defaultBirthdayWindowDays = 7

// ContactRepository は連絡先エンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
// すべての読み書きは所有ユーザーにスコープされます。
type ContactRepository interface {
	// Create は新しい連絡先をストレージに永続化します。
	// 同一ユーザー内でメールアドレスが重複する場合、ErrContactEmailExistsを返します。
	Create(ctx context.Context, contact *entity.Contact) error

	// FindByID は指定ユーザーの連絡先をIDで取得します。
	// 存在しない場合、ErrContactNotFoundを返します。
	FindByID(ctx context.Context, userID, id uint) (*entity.Contact, error)

	// Search は指定ユーザーの連絡先を任意のフィルタ（部分一致）で検索します。
	// 空のフィルタはすべての連絡先を返します。
	Search(ctx context.Context, userID uint, firstName, lastName, email string) ([]entity.Contact, error)

	// Update は既存の連絡先を保存します。
	Update(ctx context.Context, contact *entity.Contact) error

	// Delete は指定ユーザーの連絡先を削除します。
	// 存在しない場合、ErrContactNotFoundを返します。
	Delete(ctx context.Context, userID, id uint) error

	// FindWithBirthday は誕生日が設定された連絡先をすべて返します。
	FindWithBirthday(ctx context.Context, userID uint) ([]entity.Contact, error)
}

// ContactsUsecase は連絡先操作のビジネスロジックを提供します。
type ContactsUsecase struct {
	repo ContactRepository
	now  func() time.Time
}

// NewContactsUsecase はContactsUsecaseの新しいインスタンスを生成します。
func NewContactsUsecase(repo ContactRepository) *ContactsUsecase {
	return &ContactsUsecase{repo: repo, now: time.Now}
}

// Create は新しい連絡先を登録します。
func (u *ContactsUsecase) Create(ctx context.Context, contact *entity.Contact) error {
	return u.repo.Create(ctx, contact)
}

// Get は指定ユーザーの連絡先をIDで取得します。
func (u *ContactsUsecase) Get(ctx context.Context, userID, id uint) (*entity.Contact, error) {
	return u.repo.FindByID(ctx, userID, id)
}

// Search は任意のフィルタで連絡先を検索します。
func (u *ContactsUsecase) Search(ctx context.Context, userID uint, firstName, lastName, email string) ([]entity.Contact, error) {
	return u.repo.Search(ctx, userID, firstName, lastName, email)
}

// Update は既存の連絡先の内容を置き換えます。
// 所有者の異なる連絡先はErrContactNotFoundになります。
func (u *ContactsUsecase) Update(ctx context.Context, userID, id uint, updated *entity.Contact) (*entity.Contact, error) {
	contact, err := u.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	contact.FirstName = updated.FirstName
	contact.LastName = updated.LastName
	contact.Email = updated.Email
	contact.Phone = updated.Phone
	contact.Birthday = updated.Birthday
	contact.ExtraInfo = updated.ExtraInfo

	if err := u.repo.Update(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}
	return contact, nil
}

// Delete は指定ユーザーの連絡先を削除します。
func (u *ContactsUsecase) Delete(ctx context.Context, userID, id uint) error {
	return u.repo.Delete(ctx, userID, id)
}

// UpcomingBirthdays は今後days日以内に誕生日を迎える連絡先を返します。
// 誕生日を今年の日付に正規化して[今日, 今日+days]の範囲で判定します。
// 年末をまたぐ誕生日は翌年に繰り越されません（既知の仕様）。
func (u *ContactsUsecase) UpcomingBirthdays(ctx context.Context, userID uint, days int) ([]entity.Contact, error) {
	if days <= 0 {
		days = defaultBirthdayWindowDays
	}

	candidates, err := u.repo.FindWithBirthday(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := u.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	until := today.AddDate(0, 0, days)

	matched := make([]entity.Contact, 0, len(candidates))
	for _, contact := range candidates {
		if contact.Birthday == nil {
			continue
		}
		b := *contact.Birthday
		// 今年の日付に正規化して比較
		normalized := time.Date(today.Year(), b.Month(), b.Day(), 0, 0, 0, 0, today.Location())
		if !normalized.Before(today) && !normalized.After(until) {
			matched = append(matched, contact)
		}
	}
	return matched, nil
}
