package google

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"talkwatch/internal/speech/player"

	gctts "cloud.google.com/go/texttospeech/apiv1"
	ttspb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"go.uber.org/zap"
)

// Config selects the Google Cloud Text-to-Speech voice.
type Config struct {
	Language     string
	Voice        string
	SpeakingRate float64
	Pitch        float64
	VolumeGainDb float64
}

// Client synthesises speech through Google Cloud Text-to-Speech and plays
// the MP3 result.
type Client struct {
	mu     sync.Mutex
	config Config
	player player.Player
	logger *zap.SugaredLogger
	tts    *gctts.Client
}

// New creates a Client. The API connection is opened on first use with
// application default credentials.
func New(config Config, p player.Player, logger *zap.SugaredLogger) *Client {
	return &Client{config: config, player: p, logger: logger}
}

// Synthesize requests audio for text and blocks until it has been played.
func (client *Client) Synthesize(ctx context.Context, text string) error {
	ttsClient, err := client.connect(ctx)
	if err != nil {
		return err
	}

	started := time.Now()
	resp, err := ttsClient.SynthesizeSpeech(ctx, buildRequest(client.config, text))
	if err != nil {
		return fmt.Errorf("google tts synthesize: %w", err)
	}
	if client.logger != nil {
		client.logger.Debugw("Google TTS synthesize completed", "took", time.Since(started).String())
	}

	return client.player.Play("mp3", io.NopCloser(bytes.NewReader(resp.GetAudioContent())))
}

// Close releases the API connection.
func (client *Client) Close() error {
	client.mu.Lock()
	defer client.mu.Unlock()
	if client.tts == nil {
		return nil
	}
	err := client.tts.Close()
	client.tts = nil
	return err
}

func (client *Client) connect(ctx context.Context) (*gctts.Client, error) {
	client.mu.Lock()
	defer client.mu.Unlock()
	if client.tts != nil {
		return client.tts, nil
	}
	ttsClient, err := gctts.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("google tts connect: %w", err)
	}
	client.tts = ttsClient
	return ttsClient, nil
}

func buildRequest(config Config, text string) *ttspb.SynthesizeSpeechRequest {
	var input *ttspb.SynthesisInput
	if strings.HasPrefix(strings.TrimSpace(text), "<speak>") {
		input = &ttspb.SynthesisInput{InputSource: &ttspb.SynthesisInput_Ssml{Ssml: text}}
	} else {
		input = &ttspb.SynthesisInput{InputSource: &ttspb.SynthesisInput_Text{Text: text}}
	}

	rate := config.SpeakingRate
	if rate <= 0 {
		rate = 1.0
	}

	return &ttspb.SynthesizeSpeechRequest{
		Input: input,
		Voice: &ttspb.VoiceSelectionParams{
			LanguageCode: config.Language,
			Name:         config.Voice,
		},
		AudioConfig: &ttspb.AudioConfig{
			AudioEncoding:    ttspb.AudioEncoding_MP3,
			SpeakingRate:     rate,
			Pitch:            config.Pitch,
			VolumeGainDb:     config.VolumeGainDb,
			EffectsProfileId: []string{"small-bluetooth-speaker-class-device"},
		},
	}
}
