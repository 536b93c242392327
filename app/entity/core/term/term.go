package term

import (
	"golang.org/x/sys/unix"
)

// IsTerminal はファイルディスクリプタが端末かどうかを返す
// 端末設定を取得できれば端末とみなす
func IsTerminal(fd uintptr) bool {
	_, err := unix.IoctlGetTermios(int(fd), unix.TCGETS)
	return err == nil
}
