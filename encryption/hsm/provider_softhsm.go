//go:build softhsm

// Package hsm implements the Encrypter collaborator on top of a PKCS#11
// token (SoftHSM in development). Enabled by the softhsm build tag so the
// default build carries no pkcs11 dependency at link time.
package hsm

import (
	"fmt"

	"github.com/miekg/pkcs11"
)

// SoftHSMProvider encrypts payloads with an AES key held inside the token.
// The crypt key material issued by the backend selects the key by label; the
// material itself never leaves the process as a cipher key.
type SoftHSMProvider struct {
	libPath string
	slotID  uint
	pin     string
	p11     *pkcs11.Ctx
	sess    pkcs11.SessionHandle
}

func NewSoftHSMProvider(libPath string, slotID uint, pin string) *SoftHSMProvider {
	return &SoftHSMProvider{libPath: libPath, slotID: slotID, pin: pin}
}

func (p *SoftHSMProvider) Open() error {
	p.p11 = pkcs11.New(p.libPath)
	if p.p11 == nil {
		return fmt.Errorf("load pkcs11 lib failed")
	}
	if err := p.p11.Initialize(); err != nil {
		return err
	}
	sess, err := p.p11.OpenSession(pkcs11.SlotID(p.slotID), pkcs11.CKF_SERIAL_SESSION)
	if err != nil {
		_ = p.p11.Finalize()
		return err
	}
	p.sess = sess
	if err := p.p11.Login(p.sess, pkcs11.CKU_USER, p.pin); err != nil {
		_ = p.p11.CloseSession(p.sess)
		_ = p.p11.Finalize()
		return err
	}
	return nil
}

func (p *SoftHSMProvider) Close() error {
	if p.p11 == nil {
		return nil
	}
	_ = p.p11.Logout(p.sess)
	_ = p.p11.CloseSession(p.sess)
	err := p.p11.Finalize()
	p.p11.Destroy()
	p.p11 = nil
	return err
}

// Encrypt looks up the AES key labelled with the crypt key material and runs
// AES-GCM inside the token.
func (p *SoftHSMProvider) Encrypt(keyMaterial, payload []byte) ([]byte, error) {
	if p.p11 == nil {
		return nil, fmt.Errorf("provider is not open")
	}
	key, err := p.findKey(string(keyMaterial))
	if err != nil {
		return nil, err
	}

	params := pkcs11.NewGCMParams(nil, nil, 128)
	defer params.Free()
	mech := []*pkcs11.Mechanism{pkcs11.NewMechanism(pkcs11.CKM_AES_GCM, params)}
	if err := p.p11.EncryptInit(p.sess, mech, key); err != nil {
		return nil, fmt.Errorf("encrypt init: %w", err)
	}
	out, err := p.p11.Encrypt(p.sess, payload)
	if err != nil {
		return nil, fmt.Errorf("encrypt: %w", err)
	}
	return out, nil
}

func (p *SoftHSMProvider) findKey(label string) (pkcs11.ObjectHandle, error) {
	template := []*pkcs11.Attribute{
		pkcs11.NewAttribute(pkcs11.CKA_CLASS, pkcs11.CKO_SECRET_KEY),
		pkcs11.NewAttribute(pkcs11.CKA_LABEL, label),
	}
	if err := p.p11.FindObjectsInit(p.sess, template); err != nil {
		return 0, fmt.Errorf("find init: %w", err)
	}
	objs, _, err := p.p11.FindObjects(p.sess, 1)
	if ferr := p.p11.FindObjectsFinal(p.sess); ferr != nil && err == nil {
		err = ferr
	}
	if err != nil {
		return 0, fmt.Errorf("find key: %w", err)
	}
	if len(objs) == 0 {
		return 0, fmt.Errorf("no key with label %q", label)
	}
	return objs[0], nil
}
