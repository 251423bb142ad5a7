// Package deepgram recognizes audio windows through Deepgram's hosted
// transcription service. It is an alternative to the on-device CTC backend
// for deployments with network access.
package deepgram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	api "github.com/deepgram/deepgram-go-sdk/pkg/api/listen/v1/websocket/interfaces"
	"github.com/gorilla/websocket"

	"github.com/orpilot/orvoice-core/core/audio"
	"github.com/orpilot/orvoice-core/core/speechtotext"
)

const listenEndpoint = "wss://api.deepgram.com/v1/listen"

// Chunk size for streaming a window, 250 ms of 16 kHz linear16 audio.
const chunkBytes = 8000

type RecognizerOptions struct {
	APIKey   string
	Model    string
	Language string
	Encoding audio.EncodingInfo
}

type RecognizerOption func(*RecognizerOptions)

func WithAPIKey(key string) RecognizerOption {
	return func(o *RecognizerOptions) { o.APIKey = key }
}

func WithModel(model string) RecognizerOption {
	return func(o *RecognizerOptions) { o.Model = model }
}

func WithLanguage(language string) RecognizerOption {
	return func(o *RecognizerOptions) { o.Language = language }
}

// Recognizer streams each window over a short-lived websocket session and
// returns the concatenated final transcripts.
type Recognizer struct {
	options RecognizerOptions
}

func NewRecognizer(opts ...RecognizerOption) (*Recognizer, error) {
	options := RecognizerOptions{
		Model:    "nova-3",
		Language: "en-US",
		Encoding: audio.GetDefaultEncodingInfo(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.APIKey == "" {
		key, ok := os.LookupEnv("DEEPGRAM_API_KEY")
		if !ok {
			return nil, fmt.Errorf("deepgram api key not found")
		}
		options.APIKey = key
	}
	return &Recognizer{options: options}, nil
}

func (r *Recognizer) Recognize(ctx context.Context, samples []float32, seq uint64) (speechtotext.TranscriptEvent, error) {
	start := time.Now()
	event := speechtotext.TranscriptEvent{Seq: seq}

	conn, err := r.connect(ctx)
	if err != nil {
		return event, fmt.Errorf("failed to open socket connection to deepgram: %w", err)
	}
	defer conn.Close()

	raw := audio.EncodeS16LE(samples)
	for offset := 0; offset < len(raw); offset += chunkBytes {
		end := min(offset+chunkBytes, len(raw))
		if err := conn.WriteMessage(websocket.BinaryMessage, raw[offset:end]); err != nil {
			return event, fmt.Errorf("failed to write to deepgram client: %w", err)
		}
	}
	if err := conn.WriteJSON(struct {
		Type string `json:"type"`
	}{Type: string(api.TypeCloseStreamResponse)}); err != nil {
		return event, fmt.Errorf("failed to close deepgram stream: %w", err)
	}

	transcript, err := collectFinals(ctx, conn)
	if err != nil {
		return event, err
	}
	event.Text = strings.ToLower(strings.TrimSpace(transcript))
	event.Latency = time.Since(start)
	return event, nil
}

func (r *Recognizer) connect(ctx context.Context) (*websocket.Conn, error) {
	listenUrl, _ := url.Parse(listenEndpoint)
	queryParams := listenUrl.Query()
	queryParams.Set("encoding", r.options.Encoding.Format.Name())
	queryParams.Set("sample_rate", strconv.Itoa(r.options.Encoding.SampleRate))
	queryParams.Set("channels", "1")
	queryParams.Set("model", r.options.Model)
	queryParams.Set("language", r.options.Language)
	queryParams.Set("smart_format", "true")
	listenUrl.RawQuery = queryParams.Encode()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, listenUrl.String(),
		http.Header{"Authorization": {"Token " + r.options.APIKey}})
	return conn, err
}

func collectFinals(ctx context.Context, conn *websocket.Conn) (string, error) {
	var accumulated string
	for {
		if deadline, ok := ctx.Deadline(); ok {
			_ = conn.SetReadDeadline(deadline)
		}
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return accumulated, nil
			}
			return accumulated, fmt.Errorf("failed to read deepgram websocket message: %w", err)
		}
		if msgType == websocket.BinaryMessage {
			continue
		}

		var parsedMsg struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(msg, &parsedMsg); err != nil {
			continue
		}
		switch api.TypeResponse(parsedMsg.Type) {
		case api.TypeMessageResponse:
			var msgResp api.MessageResponse
			if err := json.Unmarshal(msg, &msgResp); err != nil {
				continue
			}
			if msgResp.IsFinal && len(msgResp.Channel.Alternatives) > 0 {
				transcript := strings.TrimSpace(msgResp.Channel.Alternatives[0].Transcript)
				if len(transcript) > 0 {
					accumulated = strings.TrimSpace(accumulated + " " + transcript)
				}
			}
		case api.TypeMetadataResponse:
			// Metadata arrives after CloseStream once all results are in.
			return accumulated, nil
		}
	}
}
