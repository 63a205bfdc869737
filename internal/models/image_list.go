package models

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// ImageList decodes product image fields whether stored as a single URL
// string or an array of URLs.
type ImageList []string

// UnmarshalBSONValue accepts both string and array BSON types so legacy
// single-image documents keep decoding.
func (l *ImageList) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bsontype.Null:
		*l = nil
		return nil
	case bsontype.Array:
		var urls []string
		if err := bson.UnmarshalValue(t, data, &urls); err != nil {
			return err
		}
		*l = urls
		return nil
	case bsontype.String:
		var url string
		if err := bson.UnmarshalValue(t, data, &url); err != nil {
			return err
		}
		trimmed := strings.TrimSpace(url)
		if trimmed == "" {
			*l = []string{}
			return nil
		}
		*l = []string{trimmed}
		return nil
	default:
		return fmt.Errorf("cannot decode %s into ImageList", t)
	}
}

// MarshalBSONValue always stores the list as an array so new writes stay
// consistent.
func (l ImageList) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue([]string(l))
}

// Primary returns the first image URL, used for order-item snapshots.
func (l ImageList) Primary() string {
	if len(l) == 0 {
		return ""
	}
	return l[0]
}
