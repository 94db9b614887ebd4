package idgen

import "github.com/google/uuid"

// UUID は UUID を払い出す ID ジェネレーターです。
// ID はランダムな v4、フィンガープリントは時刻順に並ぶ v7 を使います。
type UUID struct{}

// Generate は UUIDv4 を返します。
func (UUID) Generate() string {
	return uuid.NewString()
}

// GenerateFingerprint は UUIDv7 を返します。生成に失敗した場合は v4 で代替します。
func (UUID) GenerateFingerprint() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
