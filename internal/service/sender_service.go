package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"torqrides/internal/entities"
)

type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

func (s *SenderService) SendBookingEmail(b entities.BookingResponse) {
	loc, errLoc := time.LoadLocation("Asia/Kolkata")
	if errLoc != nil {
		loc = time.FixedZone("IST", 5*3600+1800)
	}

	emailData := entities.BookingEmailData{
		CustomerName:     b.CustomerName,
		BookingCode:      b.Code,
		MotorcycleName:   b.MotorcycleName,
		PickupFormatted:  b.PickupTime.In(loc).Format("02 Jan 2006 15:04 MST"),
		DropoffFormatted: b.DropoffTime.In(loc).Format("02 Jan 2006 15:04 MST"),
		PeriodLabel:      b.Period.Label,
		Status:           b.Status,
		CurrentYear:      time.Now().In(loc).Year(),
	}

	emailSubject := fmt.Sprintf("Your Torq Rides booking is %s - Code: %s", b.Status, emailData.BookingCode)
	plainTextBody := fmt.Sprintf(
		"Hello %s,\n\nYour booking at Torq Rides is %s.\n\n"+
			"Booking Details:\n"+
			"Booking Code: %s\n"+
			"Motorcycle: %s\n"+
			"Duration: %s\n"+
			"Pickup: %s\n"+
			"Dropoff: %s\n\n"+
			"Thank you for choosing Torq Rides.\n\n"+
			"Torq Rides. All rights reserved.",
		emailData.CustomerName, b.Status, emailData.BookingCode, emailData.MotorcycleName,
		emailData.PeriodLabel, emailData.PickupFormatted, emailData.DropoffFormatted,
	)

	var htmlBody string
	tmplPath := filepath.Join("internal", "templates", "booking_email.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("ALERT: failed to parse HTML email template (%s): %v", tmplPath, err)
	} else {
		var htmlBodyBuffer bytes.Buffer
		if err := tmpl.Execute(&htmlBodyBuffer, emailData); err != nil {
			log.Printf("ALERT: failed to execute HTML email template for booking %s: %v", emailData.BookingCode, err)
		}
		htmlBody = htmlBodyBuffer.String()
	}

	go func(toEmail, name, subject, plainBody, htmlBodyContent string) {
		if errEmail := SendEmailWithSendGrid(toEmail, name, subject, plainBody, htmlBodyContent); errEmail != nil {
			log.Printf("ALERT (async): email send failed for booking %s: %v", emailData.BookingCode, errEmail)
		}
	}(b.CustomerEmail, emailData.CustomerName, emailSubject, plainTextBody, htmlBody)
}

func (s *SenderService) SendBookingSMS(b entities.BookingResponse) {
	loc, errLoc := time.LoadLocation("Asia/Kolkata")
	if errLoc != nil {
		loc = time.FixedZone("IST", 5*3600+1800)
	}

	smsMessage := fmt.Sprintf("Torq Rides: Booking %s is %s!\nPickup: %s.\nMore details in your email.",
		b.Code, b.Status,
		b.PickupTime.In(loc).Format("02/01 15:04"),
	)

	if errSMS := SendSMS(b.CustomerPhone, smsMessage); errSMS != nil {
		log.Printf("ALERT: booking %s exists but the confirmation SMS to %s failed: %v", b.Code, b.CustomerPhone, errSMS)
	}
}
