package envelope

import "fmt"

// EncryptMessage is the message a signer signs when sealing a file.
func EncryptMessage(fileName string, fileSize int64) string {
	return fmt.Sprintf("Encrypt file: %s (%d bytes)", fileName, fileSize)
}

// DecryptMessage is the message a signer signs when requesting a reveal.
func DecryptMessage(fileName string) string {
	return fmt.Sprintf("Decrypt file: %s", fileName)
}
