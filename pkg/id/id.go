package id

import (
	"crypto/md5"
	"io"

	"github.com/gofrs/uuid"
)

// GenTraceID new normal traceID
func GenTraceID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// TraceIDFrom new traceID from text
func TraceIDFrom(text string) string {
	return UUIDFromString(text)
}

// UUIDByName new uuid string from name under the uuid namespace
func UUIDByName(uuidStr, name string) string {
	ns, e := uuid.FromString(uuidStr)
	if e != nil {
		panic(e)
	}

	return uuid.NewV5(ns, name).String()
}

// UUIDFromString new uuid string from string
func UUIDFromString(text string) string {
	h := md5.New()
	io.WriteString(h, text)
	sum := h.Sum(nil)
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80
	return uuid.FromBytesOrNil(sum).String()
}

// IsUUID report whether s parses as a uuid
func IsUUID(s string) bool {
	_, err := uuid.FromString(s)
	return err == nil
}
