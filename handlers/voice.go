package handlers

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"fieldassist/config"
	"fieldassist/models"
	"fieldassist/services/orchestrator"
	"fieldassist/utils"

	speech "cloud.google.com/go/speech/apiv1"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	speechpb "google.golang.org/genproto/googleapis/cloud/speech/v1"
)

const (
	MaxFileSize      = 5 * 1024 * 1024 // 5MB
	AllowedExtension = ".wav"
	requiredRate     = 16000
)

type waveHeader struct {
	RiffTag       [4]byte
	FileSize      uint32
	WaveTag       [4]byte
	FmtTag        [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataTag       [4]byte
	DataSize      uint32
}

func parseWaveHeader(data []byte) (*waveHeader, error) {
	if len(data) < 44 {
		return nil, errors.New("invalid WAV header length")
	}

	var header waveHeader
	buf := bytes.NewReader(data)
	if err := binary.Read(buf, binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	return &header, nil
}

// validateWave checks the upload is PCM 16-bit mono at 16kHz, the only format
// we hand to the speech API.
func validateWave(header *waveHeader) error {
	switch {
	case string(header.RiffTag[:]) != "RIFF" || string(header.WaveTag[:]) != "WAVE":
		return errors.New("not a WAV file")
	case header.AudioFormat != 1:
		return errors.New("audio must be uncompressed PCM")
	case header.NumChannels != 1:
		return errors.New("audio must be mono")
	case header.SampleRate != requiredRate:
		return fmt.Errorf("audio must be sampled at %d Hz", requiredRate)
	case header.BitsPerSample != 16:
		return errors.New("audio must be 16-bit")
	}
	return nil
}

// VoiceHandler transcribes a short WAV recording and runs the transcript
// through the assistant as a voice-channel turn.
type VoiceHandler struct {
	Orc    *orchestrator.Orchestrator
	logger *zap.Logger
}

func NewVoiceHandler(orc *orchestrator.Orchestrator, logger *zap.Logger) *VoiceHandler {
	return &VoiceHandler{Orc: orc, logger: logger}
}

func (h *VoiceHandler) VoiceTurnHandler(c *gin.Context) {
	language := c.DefaultPostForm("language", "en-US")
	sessionID := c.PostForm("session_id")

	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "audio file is required", err.Error())
		return
	}
	defer file.Close()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != AllowedExtension {
		utils.JSONError(c, http.StatusBadRequest, "invalid file type",
			fmt.Sprintf("expected %s, got %s", AllowedExtension, ext))
		return
	}

	audioData, err := io.ReadAll(io.LimitReader(file, MaxFileSize))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to read audio file", err.Error())
		return
	}

	wav, err := parseWaveHeader(audioData)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "malformed audio", err.Error())
		return
	}
	if err := validateWave(wav); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "unsupported audio format", err.Error())
		return
	}

	ctx := c.Request.Context()
	client, err := speech.NewClient(ctx, option.WithCredentialsFile(config.AppConfig.GoogleServiceAccountFile))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to initialize speech client", err.Error())
		return
	}
	defer client.Close()

	resp, err := client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   requiredRate,
			LanguageCode:      language,
			AudioChannelCount: 1,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audioData},
		},
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "speech recognition failed", err.Error())
		return
	}

	var transcript strings.Builder
	for _, result := range resp.Results {
		for _, alt := range result.Alternatives {
			transcript.WriteString(alt.Transcript + " ")
		}
	}
	text := strings.TrimSpace(transcript.String())
	if text == "" {
		utils.JSONError(c, http.StatusUnprocessableEntity, "no speech detected", "")
		return
	}

	out, err := h.Orc.HandleMessage(ctx, sessionID, models.ChannelVoice, text)
	if err != nil {
		h.logger.Error("voice turn failed", zap.String("sessionId", sessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "assistant failed", "please call us instead")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transcription": text,
		"reply":         out.Text,
	})
}
