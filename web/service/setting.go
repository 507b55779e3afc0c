package service

import (
	"strconv"

	"github.com/mhsanaei/blog/config"
	"github.com/mhsanaei/blog/database"
	"github.com/mhsanaei/blog/database/model"
	"github.com/mhsanaei/blog/logger"
	"github.com/mhsanaei/blog/util/common"
	"github.com/mhsanaei/blog/util/random"
)

const secretLength = 64

var defaultValueMap = map[string]string{
	"webListen":     "",
	"webPort":       "5000",
	"sessionMaxAge": "0",
}

// SettingService reads and writes the key/value rows of the settings table.
type SettingService struct{}

func (s *SettingService) getSetting(key string) (*model.Setting, error) {
	db := database.GetDB()
	setting := &model.Setting{}
	err := db.Model(model.Setting{}).Where("key = ?", key).First(setting).Error
	if err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *SettingService) saveSetting(key string, value string) error {
	setting, err := s.getSetting(key)
	db := database.GetDB()
	if database.IsNotFound(err) {
		return db.Create(&model.Setting{
			Key:   key,
			Value: value,
		}).Error
	} else if err != nil {
		return err
	}
	setting.Value = value
	return db.Save(setting).Error
}

func (s *SettingService) getString(key string) (string, error) {
	setting, err := s.getSetting(key)
	if database.IsNotFound(err) {
		value, ok := defaultValueMap[key]
		if !ok {
			return "", common.NewErrorf("key <%v> not in defaultValueMap", key)
		}
		return value, nil
	} else if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *SettingService) setString(key string, value string) error {
	return s.saveSetting(key, value)
}

func (s *SettingService) getInt(key string) (int, error) {
	str, err := s.getString(key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(str)
}

func (s *SettingService) setInt(key string, value int) error {
	return s.setString(key, strconv.Itoa(value))
}

func (s *SettingService) GetListen() (string, error) {
	return s.getString("webListen")
}

func (s *SettingService) SetListen(ip string) error {
	return s.setString("webListen", ip)
}

func (s *SettingService) GetPort() (int, error) {
	return s.getInt("webPort")
}

func (s *SettingService) SetPort(port int) error {
	if port <= 0 || port > 65535 {
		return common.NewErrorf("port %d out of range", port)
	}
	return s.setInt("webPort", port)
}

// GetSessionMaxAge returns the session cookie lifetime in minutes; 0 keeps the cookie for the browser session.
func (s *SettingService) GetSessionMaxAge() (int, error) {
	return s.getInt("sessionMaxAge")
}

func (s *SettingService) SetSessionMaxAge(minutes int) error {
	if minutes < 0 {
		return common.NewErrorf("session max age %d is negative", minutes)
	}
	return s.setInt("sessionMaxAge", minutes)
}

// GetSecret returns the session signing key. BLOG_SECRET wins; otherwise a random
// secret is generated on first use and persisted.
func (s *SettingService) GetSecret() ([]byte, error) {
	if secret := config.GetSecret(); secret != "" {
		return []byte(secret), nil
	}
	setting, err := s.getSetting("secret")
	if err == nil && setting.Value != "" {
		return []byte(setting.Value), nil
	}
	if err != nil && !database.IsNotFound(err) {
		return nil, err
	}
	secret := random.Seq(secretLength)
	if err := s.saveSetting("secret", secret); err != nil {
		logger.Warning("save secret failed:", err)
		return nil, err
	}
	return []byte(secret), nil
}

// ResetSecret replaces the persisted secret, invalidating every existing session.
func (s *SettingService) ResetSecret() error {
	return s.saveSetting("secret", random.Seq(secretLength))
}
