package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	alertModel "schoolku_backend/internals/features/attendance/alerts/model"
	recordModel "schoolku_backend/internals/features/attendance/records/model"
	recordService "schoolku_backend/internals/features/attendance/records/service"
	ruleModel "schoolku_backend/internals/features/attendance/rules/model"
	helper "schoolku_backend/internals/helpers"
)

/* ===============================
   Notification Trigger
   Dievaluasi SETELAH tulis, terlepas dari jalur tulisnya; tidak pernah
   memblokir pencatatan kehadiran (kanal pesan lambat ≠ pencatatan lambat).
=================================*/

// Sender: boundary ke kolaborator pesan eksternal.
type Sender interface {
	Send(ctx context.Context, alert *alertModel.AttendanceAlertModel) error
}

// WebhookSender: POST JSON ke endpoint kolaborator.
type WebhookSender struct {
	URL    string
	Client *http.Client
}

func NewWebhookSender(url string) *WebhookSender {
	return &WebhookSender{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (w *WebhookSender) Send(ctx context.Context, alert *alertModel.AttendanceAlertModel) error {
	if w.URL == "" {
		return errors.New("NOTIFY_WEBHOOK_URL kosong")
	}
	body, err := sonic.Marshal(alert)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := w.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook status %d", resp.StatusCode)
	}
	return nil
}

type AlertService struct {
	DB      *gorm.DB
	Records *recordService.RecordService
	Sender  Sender
}

func NewAlertService(db *gorm.DB, sender Sender) *AlertService {
	return &AlertService{
		DB:      db,
		Records: recordService.NewRecordService(db),
		Sender:  sender,
	}
}

// batas mundur saat menghitung streak; streak lebih panjang dari ini tetap
// terdeteksi sebagai ">= ambang"
const streakLookback = 60

// ConsecutiveAbsenceStreak: hitung streak absent berurutan yang berakhir di
// `until`, dari record terurut tanggal menurun. Hari tanpa record dilewati
// (hari libur tidak memutus streak); status selain absent memutus.
func ConsecutiveAbsenceStreak(records []recordModel.AttendanceRecordModel) int {
	streak := 0
	for _, r := range records {
		if r.AttendanceRecordStatus != recordModel.AttendanceAbsent {
			break
		}
		streak++
	}
	return streak
}

// EvaluateAfterWrite: untuk setiap subject yang tersentuh batch tulis,
// hitung ulang streak dan emit maksimal satu notifikasi per streak.
// Dipanggil lewat goroutine oleh jalur tulis (fire-and-forget).
func (s *AlertService) EvaluateAfterWrite(
	ctx context.Context,
	schoolID uuid.UUID,
	kind recordModel.SubjectKind,
	date time.Time,
	subjectIDs []uuid.UUID,
	rule *ruleModel.AttendanceRuleModel,
) {
	// alert orang tua hanya relevan untuk student
	if kind != recordModel.SubjectStudent {
		return
	}

	for _, subjectID := range subjectIDs {
		if err := s.evaluateSubject(ctx, schoolID, kind, date, subjectID, rule); err != nil {
			log.Printf("[ERROR] evaluasi alert subject=%s: %v", subjectID, err)
		}
	}
}

func (s *AlertService) evaluateSubject(
	ctx context.Context,
	schoolID uuid.UUID,
	kind recordModel.SubjectKind,
	date time.Time,
	subjectID uuid.UUID,
	rule *ruleModel.AttendanceRuleModel,
) error {
	history, err := s.Records.QueryBySubject(ctx, schoolID, subjectID, kind, date, streakLookback)
	if err != nil {
		return err
	}
	streak := ConsecutiveAbsenceStreak(history)

	// streak putus → reset dedup state supaya streak berikutnya bisa memicu lagi
	if streak == 0 {
		return s.DB.WithContext(ctx).
			Model(&alertModel.AttendanceAlertStateModel{}).
			Where("attendance_alert_state_school_id = ? AND attendance_alert_state_subject_id = ?", schoolID, subjectID).
			Update("attendance_alert_state_last_notified_streak", 0).Error
	}

	if streak < rule.AttendanceRuleNotifyAfterAbsences || !rule.AttendanceRuleAutoNotifyParents {
		return nil
	}

	var alert *alertModel.AttendanceAlertModel
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var state alertModel.AttendanceAlertStateModel
		err := tx.
			Where("attendance_alert_state_school_id = ? AND attendance_alert_state_subject_id = ?", schoolID, subjectID).
			First(&state).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			state = alertModel.AttendanceAlertStateModel{
				AttendanceAlertStateID:        uuid.New(),
				AttendanceAlertStateSchoolID:  schoolID,
				AttendanceAlertStateSubjectID: subjectID,
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&state).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		// sudah pernah dinotifikasi untuk streak sepanjang ini → suppress
		if state.AttendanceAlertStateLastNotifiedStreak >= streak {
			return nil
		}

		payload, _ := sonic.Marshal(map[string]any{
			"subject_id": subjectID.String(),
			"school_id":  schoolID.String(),
			"streak":     streak,
			"date":       date.Format(helper.DateLayout),
		})
		alert = &alertModel.AttendanceAlertModel{
			AttendanceAlertID:        uuid.New(),
			AttendanceAlertSchoolID:  schoolID,
			AttendanceAlertSubjectID: subjectID,
			AttendanceAlertTitle:     fmt.Sprintf("Siswa absen %d hari berturut-turut", streak),
			AttendanceAlertStreak:    streak,
			AttendanceAlertPayload:   payload,
			AttendanceAlertTags:      []string{"attendance", "absence-streak"},
		}
		if err := tx.Create(alert).Error; err != nil {
			return err
		}

		return tx.Model(&alertModel.AttendanceAlertStateModel{}).
			Where("attendance_alert_state_id = ?", state.AttendanceAlertStateID).
			Update("attendance_alert_state_last_notified_streak", streak).Error
	})
	if err != nil || alert == nil {
		return err
	}

	// kirim best-effort; gagal → worker redelivery yang mengulang
	s.trySend(ctx, alert)
	return nil
}

func (s *AlertService) trySend(ctx context.Context, alert *alertModel.AttendanceAlertModel) {
	if s.Sender == nil {
		return
	}
	err := s.Sender.Send(ctx, alert)
	updates := map[string]interface{}{
		"attendance_alert_attempts": gorm.Expr("attendance_alert_attempts + 1"),
	}
	if err == nil {
		now := time.Now().UTC()
		updates["attendance_alert_sent_at"] = now
	} else {
		log.Printf("[ERROR] kirim alert %s gagal: %v", alert.AttendanceAlertID, err)
	}
	if dbErr := s.DB.WithContext(ctx).
		Model(&alertModel.AttendanceAlertModel{}).
		Where("attendance_alert_id = ?", alert.AttendanceAlertID).
		Updates(updates).Error; dbErr != nil {
		log.Printf("[ERROR] update status alert %s: %v", alert.AttendanceAlertID, dbErr)
	}
}
