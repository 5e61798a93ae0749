package domain

// ActorID - непрозрачный уникальный идентификатор актора.
// Ключ для всех операций реестра.
type ActorID string

func (id ActorID) String() string {
	return string(id)
}
