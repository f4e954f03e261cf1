package client

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

func numberToStringHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() != reflect.String {
			return data, nil
		}
		switch f.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return fmt.Sprint(data), nil
		}
		return data, nil
	}
}

var payloadDecodeHook = mapstructure.ComposeDecodeHookFunc(
	numberToStringHook(),
	mapstructure.StringToTimeHookFunc(time.RFC3339),
)

// Decode maps an envelope payload onto a typed DTO. JSON tags double as the
// field mapping, and weakly typed input absorbs the backend's habit of
// returning numbers as strings and vice versa.
func Decode[T any](resp *Response) (T, error) {
	var out T
	if resp == nil || resp.Data == nil {
		return out, nil
	}
	cfg := &mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       payloadDecodeHook,
		Result:           &out,
		TagName:          "json",
		ZeroFields:       true,
	}
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return out, err
	}
	if err := dec.Decode(resp.Data); err != nil {
		return out, fmt.Errorf("decode response payload: %w", err)
	}
	return out, nil
}
