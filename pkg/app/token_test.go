package app

import (
	"testing"
	"time"
)

func TestTokenManager_GenerateAndParse(t *testing.T) {
	cfg := TokenConfig{
		SecretKey: "actor-secret",
		Expiry:    24 * time.Hour,
		Issuer:    "actor-issuer",
	}
	tm := NewTokenManager(cfg)

	actorID := "editor-42"
	name := "testeditor"
	ip := "127.0.0.1"

	// 1. 测试生成和解析
	token, err := tm.Generate(actorID, name, ip)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	parsedActor, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// 验证字段
	if parsedActor.ActorID != actorID {
		t.Errorf("Expected ActorID %s, got %s", actorID, parsedActor.ActorID)
	}
	if parsedActor.Name != name {
		t.Errorf("Expected Name %s, got %s", name, parsedActor.Name)
	}
	if parsedActor.IP != ip {
		t.Errorf("Expected IP %s, got %s", ip, parsedActor.IP)
	}
	if parsedActor.Issuer != cfg.Issuer {
		t.Errorf("Expected Issuer %s, got %s", cfg.Issuer, parsedActor.Issuer)
	}

	// 2. 测试过期
	shortExpiryCfg := cfg
	shortExpiryCfg.Expiry = -1 * time.Second
	tmExpired := NewTokenManager(shortExpiryCfg)

	expiredToken, err := tmExpired.Generate(actorID, name, ip)
	if err != nil {
		t.Fatalf("Generate (expired) failed: %v", err)
	}

	_, err = tm.Parse(expiredToken)
	if err == nil {
		t.Error("Expected error for expired token, but got nil")
	}

	// 3. 测试错误的密钥
	wrongKeyCfg := cfg
	wrongKeyCfg.SecretKey = "wrong-actor-secret"
	tmWrongKey := NewTokenManager(wrongKeyCfg)

	wrongToken, _ := tmWrongKey.Generate(actorID, name, ip)
	_, err = tm.Parse(wrongToken)
	if err == nil {
		t.Error("Expected error for token generated with different secret key, but got nil")
	}

	// 4. 测试篡改后的 Token
	tamperedToken := token + "xyz"
	_, err = tm.Parse(tamperedToken)
	if err == nil {
		t.Error("Expected error for tampered actor token, but got nil")
	}
}

func TestTokenManager_Defaults(t *testing.T) {
	tm := NewTokenManager(TokenConfig{SecretKey: "s"})

	token, err := tm.Generate("a-1", "someone", "10.0.0.1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.Issuer != DefaultTokenIssuer {
		t.Errorf("Expected default issuer %s, got %s", DefaultTokenIssuer, claims.Issuer)
	}
	if err := tm.Validate(token); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}
