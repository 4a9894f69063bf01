// Package ids генерирует идентификаторы записей и различает их виды.
//
// Временный идентификатор — короткая base36-строка, назначаемая записи
// локально до подтверждения хранилищем. Постоянный — 24-символьный hex,
// который выдаёт слой хранения. Различие только по длине: всё короче
// 24 символов считается временным.
package ids

import (
	"crypto/rand"
	"encoding/hex"
	mrand "math/rand"
)

// DurableLen длина постоянного идентификатора в символах.
const DurableLen = 24

const tempLen = 9

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewTemp возвращает новый временный идентификатор: 9 символов base36.
func NewTemp() string {
	b := make([]byte, tempLen)
	for i := range b {
		b[i] = base36[mrand.Intn(len(base36))]
	}
	return string(b)
}

// NewDurable возвращает новый постоянный идентификатор: 24 hex-символа
// из криптографического источника.
func NewDurable() string {
	b := make([]byte, DurableLen/2)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand на поддерживаемых платформах не возвращает ошибку
		panic(err)
	}
	return hex.EncodeToString(b)
}

// IsTemporary сообщает, является ли идентификатор временным.
func IsTemporary(id string) bool {
	return len(id) < DurableLen
}
