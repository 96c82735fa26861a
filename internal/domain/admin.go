package domain

// Admin — учётная запись администратора.
// Пароль хранится только в виде bcrypt-хэша.
type Admin struct {
	ID           int64
	Username     string
	PasswordHash string
}

// User — учётная запись покупателя. В текущих потоках не используется,
// но входит в схему хранилища.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
}
