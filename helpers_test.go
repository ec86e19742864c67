package ediwire

import (
	"strings"
	"time"
)

// sampleISA is a fixed-width 106-byte interchange header: element
// separator at byte 4, segment terminator at byte 106.
const sampleISA = "ISA*00*          *00*          *ZZ*SENDERID       *ZZ*RECEIVERID     *250101*1200*^*00501*000000001*0*P*:~"

func sample850() string {
	return strings.Join([]string{
		sampleISA,
		"GS*PO*SENDER*RECEIVER*20250101*1200*1*X*005010~",
		"ST*850*0001~",
		"BEG*00*SA*PO123456**20250101~",
		"N1*BY*Acme Corporation~",
		"PO1*1*10*EA*5.00**VP*SKU1~",
		"SE*5*0001~",
		"GE*1*1~",
		"IEA*1*000000001~",
	}, "\n")
}

func sample850NoBEG() string {
	return strings.Replace(sample850(), "BEG*00*SA*PO123456**20250101~\n", "", 1)
}

const sampleOrders = "UNA:+.? 'UNB+UNOA:2+SENDER:+RECEIVER:+250101:1200+1'" +
	"UNH+1+ORDERS:D:96A:UN'" +
	"BGM+220+ORD123+9'" +
	"DTM+137:20250101:102'" +
	"NAD+BY+12345+Acme'" +
	"LIN+1++SKU1:EN'" +
	"UNT+6+1'" +
	"UNZ+1+1'"

func fixedNow() time.Time {
	return time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
}
