package company

import "context"

// Creator は会社の作成を行います。
type Creator interface {
	Create(ctx context.Context, company *Company) (*Company, error)
}

// Editor は既存の会社を置き換えます。
type Editor interface {
	Edit(ctx context.Context, id ID, company *Company) (*Company, error)
}

// Retriever は ID で会社を取得します。存在しない場合は ErrNotFound を返します。
type Retriever interface {
	FindByID(ctx context.Context, id ID) (*Company, error)
}

// Lister はすべての会社を取得します。
type Lister interface {
	FindAll(ctx context.Context) ([]*Company, error)
}

// Deleter は会社を削除します。存在しない ID でもエラーにはなりません。
type Deleter interface {
	Delete(ctx context.Context, id ID) error
}

// Repository は会社エンティティの永続化を行うインターフェースです。
type Repository interface {
	Creator
	Editor
	Retriever
	Lister
	Deleter
}
