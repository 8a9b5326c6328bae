package airalo

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/SergeyBogomolovv/esim-order-service/internal/entities"
)

type tokenResponse struct {
	Data struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
		TokenType   string `json:"token_type"`
	} `json:"data"`
}

type simDTO struct {
	ICCID                      string `json:"iccid"`
	QRCode                     string `json:"qrcode"`
	QRCodeURL                  string `json:"qrcode_url"`
	DirectAppleInstallationURL string `json:"direct_apple_installation_url"`
	LPA                        string `json:"lpa"`
	MatchingID                 string `json:"matching_id"`
}

type orderResponse struct {
	Data struct {
		ID   json.Number `json:"id"`
		Code string      `json:"code"`
		Sims []simDTO    `json:"sims"`
	} `json:"data"`
}

func (r orderResponse) toResult() entities.ProvisioningResult {
	res := entities.ProvisioningResult{
		ProviderOrderID:   r.Data.ID.String(),
		ProviderOrderCode: r.Data.Code,
	}
	if len(r.Data.Sims) == 0 {
		return res
	}
	sim := r.Data.Sims[0]
	res.ICCID = sim.ICCID
	res.Provisioning = entities.Provisioning{
		QRCode:                     sim.QRCode,
		QRCodeURL:                  sim.QRCodeURL,
		DirectAppleInstallationURL: sim.DirectAppleInstallationURL,
		LPA:                        sim.LPA,
		MatchingID:                 sim.MatchingID,
	}
	return res
}

type usageResponse struct {
	Data struct {
		Remaining      int    `json:"remaining"`
		Total          int    `json:"total"`
		IsUnlimited    bool   `json:"is_unlimited"`
		ExpiredAt      string `json:"expired_at"`
		Status         string `json:"status"`
		RemainingVoice int    `json:"remaining_voice"`
		TotalVoice     int    `json:"total_voice"`
		RemainingText  int    `json:"remaining_text"`
		TotalText      int    `json:"total_text"`
	} `json:"data"`
}

var expiryLayouts = []string{"2006-01-02 15:04:05", time.RFC3339, time.DateOnly}

func (r usageResponse) toUsage(iccid string) entities.Usage {
	u := entities.Usage{
		ICCID:          iccid,
		Status:         strings.ToUpper(r.Data.Status),
		Unlimited:      r.Data.IsUnlimited,
		TotalMB:        r.Data.Total,
		RemainingMB:    r.Data.Remaining,
		TotalVoice:     r.Data.TotalVoice,
		RemainingVoice: r.Data.RemainingVoice,
		TotalText:      r.Data.TotalText,
		RemainingText:  r.Data.RemainingText,
	}
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, r.Data.ExpiredAt); err == nil {
			u.ExpiresAt = &t
			break
		}
	}
	return u
}
