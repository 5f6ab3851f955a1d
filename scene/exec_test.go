// SPDX-License-Identifier: Apache-2.0

package scene

import (
	"bytes"
	"context"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zoomvr/geomodelportal/model"
)

func multipartMessage(t *testing.T, parts map[string][]byte) []byte {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for name, data := range parts {
		fw, err := w.CreateFormField(name)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	var msg bytes.Buffer
	msg.WriteString("Content-Type: " + w.FormDataContentType() + "\r\n\r\n")
	msg.Write(body.Bytes())
	return msg.Bytes()
}

func TestParsePayload(t *testing.T) {
	msg := multipartMessage(t, map[string][]byte{
		"":          []byte(`{"buffers":[]}`),
		BinPartName: {0xde, 0xad},
	})

	payload, err := ParsePayload(bytes.NewReader(msg))
	require.NoError(t, err)
	require.NoError(t, payload.Validate())

	doc, err := payload.DocumentPart()
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"buffers":[]}`), doc.Data)

	bin, err := payload.BinaryPart()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad}, bin.Data)
}

func TestParsePayloadNotMultipart(t *testing.T) {
	_, err := ParsePayload(strings.NewReader("Content-Type: application/json\r\n\r\n{}"))
	assert.ErrorIs(t, err, errNotMultipart)

	_, err = ParsePayload(strings.NewReader("no headers here"))
	assert.Error(t, err)
}

func TestParsePayloadWrongPartSet(t *testing.T) {
	msg := multipartMessage(t, map[string][]byte{
		"": []byte("{}"),
	})
	_, err := ParsePayload(bytes.NewReader(msg))
	assert.ErrorIs(t, err, ErrMalformedPayload)
}

func TestExecGeneratorDisabled(t *testing.T) {
	g := NewExecGenerator(ExecConfig{}, zap.NewNop())
	_, err := g.Generate(context.Background(), model.BoreholeRecord{Name: "R1"}, nil)
	assert.ErrorIs(t, err, ErrGeneratorDisabled)
}

func TestExecGeneratorCommandFailure(t *testing.T) {
	g := NewExecGenerator(ExecConfig{Command: []string{"false"}}, zap.NewNop())
	_, err := g.Generate(context.Background(), model.BoreholeRecord{Name: "R1"}, nil)
	assert.Error(t, err)
}
