// SPDX-License-Identifier: Apache-2.0

package scene

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/zoomvr/geomodelportal/model"
)

var (
	ErrGeneratorDisabled = errors.New("no scene generator command configured")

	errNotMultipart = errors.New("generator output is not a multipart message")
)

// ExecConfig configures the out-of-process scene generator. The command
// receives the borehole record and conversion parameters as a JSON document
// on stdin and writes a MIME multipart message (headers, blank line, body)
// on stdout holding the unnamed document part and the "bin" part.
type ExecConfig struct {
	Command []string
}

// ExecGenerator shells out to the native scene generation routine.
type ExecGenerator struct {
	cfg    ExecConfig
	logger *zap.Logger
}

func NewExecGenerator(cfg ExecConfig, logger *zap.Logger) *ExecGenerator {
	return &ExecGenerator{cfg: cfg, logger: logger}
}

type generatorInput struct {
	Borehole model.BoreholeRecord `json:"borehole"`
	Params   json.RawMessage      `json:"params,omitempty"`
}

func (g *ExecGenerator) Generate(ctx context.Context, rec model.BoreholeRecord, params json.RawMessage) (Payload, error) {
	if len(g.cfg.Command) == 0 {
		return nil, ErrGeneratorDisabled
	}

	input, err := json.Marshal(generatorInput{Borehole: rec, Params: params})
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, g.cfg.Command[0], g.cfg.Command[1:]...)
	cmd.Stdin = bytes.NewReader(input)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		g.logger.Warn("scene generator command failed",
			zap.String("command", g.cfg.Command[0]),
			zap.String("stderr", stderr.String()),
			zap.Error(err))
		return nil, fmt.Errorf("scene generator failed: %w", err)
	}

	return ParsePayload(bytes.NewReader(stdout.Bytes()))
}

// ParsePayload decodes a MIME multipart message into the two-part payload.
// Part tags come from the Content-Disposition name; a part without one is
// the document part.
func ParsePayload(r io.Reader) (Payload, error) {
	tp := textproto.NewReader(bufio.NewReader(r))
	header, err := tp.ReadMIMEHeader()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errNotMultipart, err)
	}
	mediaType, mtParams, err := mime.ParseMediaType(header.Get("Content-Type"))
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return nil, errNotMultipart
	}

	mr := multipart.NewReader(tp.R, mtParams["boundary"])
	var payload Payload
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errNotMultipart, err)
		}
		data, err := io.ReadAll(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errNotMultipart, err)
		}
		payload = append(payload, Part{Name: part.FormName(), Data: data})
	}
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	return payload, nil
}
